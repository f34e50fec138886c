package selector

import (
	"math/rand/v2"

	"github.com/ppiankov/dayfacts/internal/model"
)

// Selector pages through a shuffled working list. It is not safe for
// concurrent use.
type Selector struct {
	rng     *rand.Rand
	working []model.FactRecord
	cursor  int
}

// New creates a Selector drawing randomness from rng. A nil rng uses a
// randomly seeded source.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Reset replaces the working list with a shuffled copy of records and moves
// the cursor to the first entry
func (s *Selector) Reset(records []model.FactRecord) {
	s.working = make([]model.FactRecord, len(records))
	copy(s.working, records)
	s.rng.Shuffle(len(s.working), func(i, j int) {
		s.working[i], s.working[j] = s.working[j], s.working[i]
	})
	s.cursor = 0
}

// Current returns the record under the cursor
func (s *Selector) Current() (model.FactRecord, bool) {
	if len(s.working) == 0 {
		return model.FactRecord{}, false
	}
	return s.working[s.cursor], true
}

// Advance moves the cursor forward, wrapping at the end, and returns the new
// current record
func (s *Selector) Advance() (model.FactRecord, bool) {
	if len(s.working) == 0 {
		return model.FactRecord{}, false
	}
	s.cursor = (s.cursor + 1) % len(s.working)
	return s.working[s.cursor], true
}

// Len returns the working list length
func (s *Selector) Len() int {
	return len(s.working)
}

// Position returns the zero-based cursor
func (s *Selector) Position() int {
	return s.cursor
}

// Top returns up to n records from the front of the working list
func (s *Selector) Top(n int) []model.FactRecord {
	if n > len(s.working) || n < 0 {
		n = len(s.working)
	}
	out := make([]model.FactRecord, n)
	copy(out, s.working[:n])
	return out
}
