package sidebar

import (
	"math/rand/v2"
	"testing"

	"github.com/ppiankov/dayfacts/internal/model"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func births(texts ...string) []model.FactRecord {
	out := make([]model.FactRecord, len(texts))
	for i, text := range texts {
		out[i] = model.FactRecord{Year: 1900 + i, Text: text, Kind: model.KindBirth}
	}
	return out
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantDesc string
	}{
		{"Jane Doe, physicist and Nobel laureate", "Jane Doe", "Physicist and Nobel laureate"},
		{"John Smith, American actor, director", "John Smith", "American actor, director"},
		{"A famous sailor", PlaceholderName, "A famous sailor"},
		{"Ada, ", "Ada", ""},
		{"Émile Zola, écrivain", "Émile Zola", "Écrivain"},
	}

	for _, tt := range tests {
		name, desc := SplitEntry(tt.text)
		if name != tt.wantName || desc != tt.wantDesc {
			t.Errorf("SplitEntry(%q) = %q, %q; want %q, %q", tt.text, name, desc, tt.wantName, tt.wantDesc)
		}
	}
}

func TestCurate_NotableFirst(t *testing.T) {
	in := births(
		"Alice, gardener",
		"Bob, physicist",
		"Carol, baker",
		"Dan, actor",
		"Eve, cyclist",
		"Frank, tailor",
		"Grace, plumber",
	)

	entries := Curate(in, Options{Min: 5, Max: 5}, seeded())
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}

	// Both notable records lead
	leading := map[string]bool{entries[0].Name: true, entries[1].Name: true}
	if !leading["Bob"] || !leading["Dan"] {
		t.Errorf("Expected notable entries first, got %+v", entries[:2])
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("Duplicate entry %q", e.Name)
		}
		seen[e.Name] = true
	}
}

func TestCurate_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		count int
		opts  Options
		want  int
	}{
		{"fewer than min", 3, Options{Min: 5, Max: 5}, 3},
		{"exactly min", 5, Options{Min: 5, Max: 5}, 5},
		{"truncated to max", 12, Options{Min: 5, Max: 5}, 5},
		{"range", 12, Options{Min: 2, Max: 8}, 2},
		{"empty", 0, Options{Min: 5, Max: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]model.FactRecord, tt.count)
			for i := range in {
				in[i] = model.FactRecord{Year: i, Text: "Somebody, cook"}
			}
			got := Curate(in, tt.opts, seeded())
			if len(got) != tt.want {
				t.Errorf("Expected %d entries, got %d", tt.want, len(got))
			}
		})
	}
}

func TestCurate_AllNotableCappedAtMax(t *testing.T) {
	in := births("A, king", "B, queen", "C, poet", "D, painter", "E, author", "F, singer", "G, pope")

	entries := Curate(in, Options{Min: 2, Max: 4}, seeded())
	if len(entries) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(entries))
	}
}

func TestCurate_NegativeBounds(t *testing.T) {
	in := births("A, king", "B, cook")

	entries := Curate(in, Options{Min: -1, Max: -1}, seeded())
	if len(entries) != 0 {
		t.Errorf("Expected no entries for a negative max, got %+v", entries)
	}
}

func TestCurate_CustomKeywords(t *testing.T) {
	in := births("A, sailor", "B, king")

	entries := Curate(in, Options{Min: 1, Max: 1, Keywords: []string{"sailor"}}, seeded())
	if len(entries) != 1 || entries[0].Name != "A" {
		t.Errorf("Expected the sailor, got %+v", entries)
	}
}

func TestNewEntry_Link(t *testing.T) {
	withPage := model.FactRecord{
		Year: 1930,
		Text: "Neil Armstrong, American astronaut",
		Kind: model.KindBirth,
		Pages: []model.PageRef{
			{Title: "Neil_Armstrong", CanonicalURL: "https://en.wikipedia.org/wiki/Neil_Armstrong"},
		},
	}

	e := NewEntry(withPage)
	if e.Link != "https://en.wikipedia.org/wiki/Neil_Armstrong" || e.Year != 1930 || e.Kind != model.KindBirth {
		t.Errorf("Unexpected entry: %+v", e)
	}

	plain := NewEntry(model.FactRecord{Year: 1900, Text: "Someone, somebody"})
	if plain.Link != "" {
		t.Errorf("Expected no link, got %q", plain.Link)
	}
}
