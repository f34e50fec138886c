package sidebar

import (
	"math/rand/v2"
	"strings"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/util"
)

// PlaceholderName is shown when an entry's text has no comma to split on
const PlaceholderName = "Notable Figure"

// DefaultKeywords is the notability heuristic: titles, professions and honors
var DefaultKeywords = []string{
	"president", "prime minister", "king", "queen", "emperor", "empress", "pope", "saint",
	"nobel", "laureate", "actor", "actress", "singer", "musician", "composer", "writer",
	"author", "poet", "novelist", "painter", "artist", "scientist", "physicist", "chemist",
	"mathematician", "inventor", "astronaut", "philosopher", "general", "director",
	"founder", "champion", "olympic",
}

// Options bounds the curated list
type Options struct {
	Min      int
	Max      int
	Keywords []string // nil uses DefaultKeywords
}

// DefaultOptions returns Min = Max = 5 with the default keywords
func DefaultOptions() Options {
	return Options{Min: 5, Max: 5}
}

// Entry is one rendered sidebar line
type Entry struct {
	Year        int        `json:"year"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Link        string     `json:"link,omitempty"` // Lead page URL; "" renders the name as plain text
	Kind        model.Kind `json:"kind"`
}

// Curate picks a bounded, notable-first subset of biographical records.
// Notable records are shuffled first; when fewer than Min exist the rest are
// shuffled and appended until Min is reached; the result is cut to Max.
func Curate(records []model.FactRecord, opts Options, rng *rand.Rand) []Entry {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Max < 0 {
		opts.Max = 0
	}
	keywords := opts.Keywords
	if keywords == nil {
		keywords = DefaultKeywords
	}

	var notable, rest []model.FactRecord
	for _, r := range records {
		if isNotable(r.Text, keywords) {
			notable = append(notable, r)
		} else {
			rest = append(rest, r)
		}
	}

	shuffle(rng, notable)
	picked := notable

	if len(picked) < opts.Min {
		shuffle(rng, rest)
		need := opts.Min - len(picked)
		if need > len(rest) {
			need = len(rest)
		}
		picked = append(picked, rest[:need]...)
	}

	if len(picked) > opts.Max {
		picked = picked[:opts.Max]
	}

	entries := make([]Entry, len(picked))
	for i, r := range picked {
		entries[i] = NewEntry(r)
	}
	return entries
}

// NewEntry builds the display entry for a record
func NewEntry(r model.FactRecord) Entry {
	name, desc := SplitEntry(r.Text)
	e := Entry{
		Year:        r.Year,
		Name:        name,
		Description: desc,
		Kind:        r.Kind,
	}
	if lead, ok := r.Lead(); ok {
		e.Link = lead.CanonicalURL
	}
	return e
}

// SplitEntry splits text at the first comma into a name and a description
// with its first letter upper-cased
func SplitEntry(text string) (name, description string) {
	idx := strings.Index(text, ",")
	if idx < 0 {
		return PlaceholderName, strings.TrimSpace(text)
	}
	name = strings.TrimSpace(text[:idx])
	description = util.CapitalizeFirst(strings.TrimSpace(text[idx+1:]))
	return name, description
}

func isNotable(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func shuffle(rng *rand.Rand, records []model.FactRecord) {
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}
