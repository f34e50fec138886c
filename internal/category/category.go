package category

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dayfacts/internal/model"
)

// Category names a keyword-defined subset of the day's facts
type Category string

const (
	General   Category = "general"
	USHistory Category = "us_history"
	Sports    Category = "sports"
	Science   Category = "science"
	Arts      Category = "arts"
	Conflict  Category = "conflict"
)

// Definition binds a category to its keyword lists. A definition without
// include keywords passes every record through.
type Definition struct {
	Category Category `json:"category" yaml:"category"`
	Label    string   `json:"label" yaml:"label"`
	Include  []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Hints    []string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Passthrough reports whether the definition is the identity filter
func (d Definition) Passthrough() bool {
	return len(d.Include) == 0
}

// Matches reports whether text contains at least one include keyword and no
// exclude keyword. Matching is case-insensitive substring containment with no
// word boundaries: "grand" matches "grandmaster".
func (d Definition) Matches(text string) bool {
	if d.Passthrough() {
		return true
	}

	lower := strings.ToLower(text)
	for _, kw := range d.Exclude {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range d.Include {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Table is the versioned set of category definitions, in display order
type Table struct {
	Version     int          `json:"version" yaml:"version"`
	Definitions []Definition `json:"definitions" yaml:"definitions"`
}

// Lookup returns the definition for name
func (t *Table) Lookup(name string) (Definition, error) {
	key := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, def := range t.Definitions {
		if def.Category == key {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown category %q (available: %s)", name, strings.Join(t.nameStrings(), ", "))
}

// Names returns the categories in display order
func (t *Table) Names() []Category {
	names := make([]Category, len(t.Definitions))
	for i, def := range t.Definitions {
		names[i] = def.Category
	}
	return names
}

func (t *Table) nameStrings() []string {
	names := make([]string, len(t.Definitions))
	for i, def := range t.Definitions {
		names[i] = string(def.Category)
	}
	return names
}

// Merge returns a copy of the table with user definitions overlaid. A user
// definition replaces the built-in one of the same name; new names are
// appended. Keywords are lower-cased so matching stays case-insensitive.
func (t *Table) Merge(custom []model.CategoryConfig) *Table {
	merged := &Table{
		Version:     t.Version,
		Definitions: make([]Definition, len(t.Definitions)),
	}
	copy(merged.Definitions, t.Definitions)

	for _, c := range custom {
		def := Definition{
			Category: Category(strings.ToLower(strings.TrimSpace(c.Name))),
			Label:    c.Label,
			Include:  lowerAll(c.Include),
			Exclude:  lowerAll(c.Exclude),
			Hints:    c.Hints,
		}
		if def.Label == "" {
			def.Label = string(def.Category)
		}

		replaced := false
		for i := range merged.Definitions {
			if merged.Definitions[i].Category == def.Category {
				merged.Definitions[i] = def
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Definitions = append(merged.Definitions, def)
		}
	}

	return merged
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// DefaultTable returns the built-in category table. Each revision of the
// keyword lists bumps Version.
func DefaultTable() *Table {
	return &Table{
		Version: 4,
		Definitions: []Definition{
			{
				Category: General,
				Label:    "General",
			},
			{
				Category: USHistory,
				Label:    "U.S. History",
				Include: []string{
					"united states", "american", "u.s.", "usa", "president", "congress",
					"senate", "supreme court", "declaration of independence", "white house",
				},
				Exclude: []string{"south american", "latin american", "central american"},
				Hints:   []string{"Try General to see every fact for this day", "Conflict often covers American wars and treaties"},
			},
			{
				Category: Sports,
				Label:    "Sports",
				Include: []string{
					"sport", "game", "cup", "championship", "olympic", "olympiad", "league",
					"player", "team", "won", "tournament", "world series", "super bowl", "medal",
				},
				Exclude: []string{"video game"},
				Hints:   []string{"Try General to see every fact for this day", "Births often list athletes even when events do not"},
			},
			{
				Category: Science,
				Label:    "Science",
				Include: []string{
					"scien", "discover", "invent", "physic", "chemis", "astronom", "spacecraft",
					"satellite", "nasa", "telescope", "vaccine", "patent", "moon", "planet", "comet",
				},
				Exclude: []string{"science fiction"},
				Hints:   []string{"Try General to see every fact for this day", "The SPARQL source includes more dated discoveries"},
			},
			{
				Category: Arts,
				Label:    "Arts & Culture",
				Include: []string{
					"film", "novel", "album", "song", "paint", "opera", "symphony", "theatre",
					"theater", "museum", "premiere", "published", "poet", "ballet",
				},
				Hints: []string{"Try General to see every fact for this day"},
			},
			{
				Category: Conflict,
				Label:    "Conflict",
				Include: []string{
					"war", "battle", "invasion", "siege", "army", "troops", "treaty",
					"armistice", "bomb", "military", "revolution",
				},
				Exclude: []string{"award", "star wars"},
				Hints:   []string{"Try General to see every fact for this day", "Try U.S. History for American wars"},
			},
		},
	}
}
