package category

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dayfacts/internal/model"
)

// EmptyPolicy decides what a category with no matches shows
type EmptyPolicy string

const (
	// PolicyFallback shows the full unfiltered set
	PolicyFallback EmptyPolicy = model.PolicyFallback
	// PolicyEmpty surfaces an explicit empty state with hints
	PolicyEmpty EmptyPolicy = model.PolicyEmpty
)

// ParsePolicy converts a configuration value to an EmptyPolicy
func ParsePolicy(s string) (EmptyPolicy, error) {
	switch EmptyPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFallback, "":
		return PolicyFallback, nil
	case PolicyEmpty:
		return PolicyEmpty, nil
	default:
		return "", fmt.Errorf("invalid empty policy %q: must be one of fallback, empty", s)
	}
}

// EmptyResultError reports that a category matched nothing
type EmptyResultError struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Hints    []string `json:"hints,omitempty"`
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no facts match category %s", e.Label)
}

// Result is the outcome of applying a category to a record set
type Result struct {
	Records  []model.FactRecord
	FellBack bool // true when the unfiltered set is shown instead
}

// Filter returns the records matching def, preserving order. A passthrough
// definition returns records unchanged.
func Filter(records []model.FactRecord, def Definition) []model.FactRecord {
	if def.Passthrough() {
		return records
	}

	matched := make([]model.FactRecord, 0, len(records))
	for _, r := range records {
		if def.Matches(r.Text) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Apply filters records and resolves an empty result according to policy
func Apply(records []model.FactRecord, def Definition, policy EmptyPolicy) (Result, error) {
	matched := Filter(records, def)
	if len(matched) > 0 {
		return Result{Records: matched}, nil
	}

	if policy == PolicyEmpty {
		return Result{}, &EmptyResultError{
			Category: def.Category,
			Label:    def.Label,
			Hints:    def.Hints,
		}
	}

	return Result{Records: records, FellBack: !def.Passthrough()}, nil
}
