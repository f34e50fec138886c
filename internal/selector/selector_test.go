package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/ppiankov/dayfacts/internal/model"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func records(n int) []model.FactRecord {
	out := make([]model.FactRecord, n)
	for i := range out {
		out[i] = model.FactRecord{Year: 1900 + i, Text: "fact"}
	}
	return out
}

func TestSelector_Empty(t *testing.T) {
	s := New(seeded())

	if _, ok := s.Current(); ok {
		t.Error("Expected no current record before Reset")
	}
	if _, ok := s.Advance(); ok {
		t.Error("Expected Advance to be a no-op on an empty list")
	}

	s.Reset(nil)
	if s.Len() != 0 || s.Position() != 0 {
		t.Errorf("Unexpected state: len=%d pos=%d", s.Len(), s.Position())
	}
}

func TestSelector_ResetIsPermutation(t *testing.T) {
	in := records(20)
	s := New(seeded())
	s.Reset(in)

	if s.Len() != len(in) {
		t.Fatalf("Expected %d records, got %d", len(in), s.Len())
	}

	counts := make(map[int]int)
	for _, r := range s.Top(-1) {
		counts[r.Year]++
	}
	for _, r := range in {
		if counts[r.Year] != 1 {
			t.Errorf("Year %d appears %d times", r.Year, counts[r.Year])
		}
	}

	// Input is copied, not shuffled in place
	for i, r := range in {
		if r.Year != 1900+i {
			t.Fatal("Reset modified the input slice")
		}
	}
}

func TestSelector_CycleVisitsEachOnce(t *testing.T) {
	in := records(7)
	s := New(seeded())
	s.Reset(in)

	first, _ := s.Current()
	seen := map[int]bool{first.Year: true}

	for i := 1; i < len(in); i++ {
		r, ok := s.Advance()
		if !ok {
			t.Fatal("Advance failed")
		}
		if seen[r.Year] {
			t.Fatalf("Year %d visited twice within one cycle", r.Year)
		}
		seen[r.Year] = true
	}

	if len(seen) != len(in) {
		t.Errorf("Expected %d distinct records, got %d", len(in), len(seen))
	}

	// One more advance wraps to the start
	r, _ := s.Advance()
	if r.Year != first.Year || s.Position() != 0 {
		t.Errorf("Expected wrap to first record, got year %d at %d", r.Year, s.Position())
	}
}

func TestSelector_SingleRecordWraps(t *testing.T) {
	s := New(seeded())
	s.Reset(records(1))

	for i := 0; i < 3; i++ {
		r, ok := s.Advance()
		if !ok || r.Year != 1900 || s.Position() != 0 {
			t.Fatalf("Expected the single record every time, got %+v", r)
		}
	}
}

func TestSelector_ResetRewindsCursor(t *testing.T) {
	s := New(seeded())
	s.Reset(records(5))
	s.Advance()
	s.Advance()

	s.Reset(records(3))
	if s.Position() != 0 || s.Len() != 3 {
		t.Errorf("Expected cursor 0 over 3 records, got %d/%d", s.Position(), s.Len())
	}
}

func TestSelector_DeterministicWithSeed(t *testing.T) {
	a, b := New(seeded()), New(seeded())
	a.Reset(records(10))
	b.Reset(records(10))

	for i, r := range a.Top(10) {
		if b.Top(10)[i].Year != r.Year {
			t.Fatal("Expected identical order for identical seeds")
		}
	}
}

func TestSelector_Top(t *testing.T) {
	s := New(seeded())
	s.Reset(records(4))

	if got := len(s.Top(2)); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := len(s.Top(10)); got != 4 {
		t.Errorf("Expected clamp to 4, got %d", got)
	}
}
