package category

import (
	"errors"
	"testing"

	"github.com/ppiankov/dayfacts/internal/model"
)

func records(texts ...string) []model.FactRecord {
	out := make([]model.FactRecord, len(texts))
	for i, text := range texts {
		out[i] = model.FactRecord{Year: 1900 + i, Text: text}
	}
	return out
}

func mustLookup(t *testing.T, name string) Definition {
	t.Helper()
	def, err := DefaultTable().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return def
}

func TestFilter_GeneralIsIdentity(t *testing.T) {
	in := records("a", "b", "c")
	out := Filter(in, mustLookup(t, "general"))

	if len(out) != len(in) {
		t.Fatalf("Expected %d records, got %d", len(in), len(out))
	}
	if &out[0] != &in[0] {
		t.Error("Expected general to return the input slice unchanged")
	}
}

func TestFilter_SportsOlympic(t *testing.T) {
	sports := mustLookup(t, "sports")

	in := records(
		"The Olympic Games open in Tokyo",
		"A chess olympiad begins",
		"A treaty is signed in Paris",
	)
	out := Filter(in, sports)

	if len(out) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %+v", len(out), out)
	}
	if out[0].Text != in[0].Text || out[1].Text != in[1].Text {
		t.Errorf("Expected input order preserved, got %+v", out)
	}
}

func TestFilter_SubstringSemantics(t *testing.T) {
	def := Definition{Category: "chess", Label: "Chess", Include: []string{"grand"}}

	out := Filter(records("Kasparov becomes a grandmaster"), def)
	if len(out) != 1 {
		t.Error("Expected keyword to match inside a longer word")
	}

	out = Filter(records("THE UNITED STATES declares independence"), mustLookup(t, "us_history"))
	if len(out) != 1 {
		t.Error("Expected case-insensitive match")
	}
}

func TestFilter_Exclude(t *testing.T) {
	conflict := mustLookup(t, "conflict")

	in := records(
		"The Battle of Hastings is fought",
		"She receives an award for the war memorial",
		"The first Academy Award ceremony is held",
	)
	out := Filter(in, conflict)

	if len(out) != 1 || out[0].Text != in[0].Text {
		t.Errorf("Expected only the battle to match, got %+v", out)
	}
}

func TestFilter_Subset(t *testing.T) {
	in := records(
		"Apollo 11 lands on the Moon",
		"The United States Congress passes an act",
		"An opera premieres in Vienna",
		"The Battle of Waterloo is fought",
		"A team wins the World Series",
	)

	for _, def := range DefaultTable().Definitions {
		out := Filter(in, def)
		seen := make(map[string]bool)
		for _, r := range in {
			seen[r.Text] = true
		}
		for _, r := range out {
			if !seen[r.Text] {
				t.Errorf("%s: record %q not in input", def.Category, r.Text)
			}
			if !def.Matches(r.Text) {
				t.Errorf("%s: record %q does not match", def.Category, r.Text)
			}
		}
	}
}

func TestApply_Policies(t *testing.T) {
	in := records("A treaty is signed", "A ship sinks")
	sports := mustLookup(t, "sports")

	res, err := Apply(in, sports, PolicyFallback)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !res.FellBack || len(res.Records) != len(in) {
		t.Errorf("Expected fallback to the full set, got %+v", res)
	}

	_, err = Apply(in, sports, PolicyEmpty)
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("Expected EmptyResultError, got %v", err)
	}
	if empty.Category != Sports || empty.Label != "Sports" || len(empty.Hints) == 0 {
		t.Errorf("Unexpected empty state: %+v", empty)
	}

	res, err = Apply(in, mustLookup(t, "conflict"), PolicyEmpty)
	if err != nil || res.FellBack || len(res.Records) != 1 {
		t.Errorf("Expected one conflict match, got %+v (%v)", res, err)
	}
}

func TestApply_GeneralNeverFallsBack(t *testing.T) {
	res, err := Apply(nil, mustLookup(t, "general"), PolicyFallback)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.FellBack {
		t.Error("Expected general not to report a fallback")
	}
}

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()

	if table.Version != 4 {
		t.Errorf("Expected table version 4, got %d", table.Version)
	}

	def, err := table.Lookup("  US_History ")
	if err != nil || def.Category != USHistory {
		t.Errorf("Expected case-insensitive lookup, got %+v (%v)", def, err)
	}

	if _, err := table.Lookup("cooking"); err == nil {
		t.Error("Expected error for unknown category")
	}

	names := table.Names()
	if len(names) != 6 || names[0] != General {
		t.Errorf("Unexpected names: %v", names)
	}
}

func TestTable_Merge(t *testing.T) {
	base := DefaultTable()
	merged := base.Merge([]model.CategoryConfig{
		{Name: "Sports", Label: "Athletics", Include: []string{" Marathon "}},
		{Name: "aviation", Include: []string{"aircraft", "FLIGHT"}},
	})

	sports, err := merged.Lookup("sports")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if sports.Label != "Athletics" || len(sports.Include) != 1 || sports.Include[0] != "marathon" {
		t.Errorf("Expected override, got %+v", sports)
	}

	aviation, err := merged.Lookup("aviation")
	if err != nil {
		t.Fatalf("Expected appended category: %v", err)
	}
	if !aviation.Matches("The first flight across the Atlantic") {
		t.Error("Expected lower-cased keywords to match")
	}
	if aviation.Label != "aviation" {
		t.Errorf("Expected label to default to the name, got %q", aviation.Label)
	}

	orig, _ := base.Lookup("sports")
	if orig.Label != "Sports" {
		t.Error("Merge must not modify the base table")
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(""); err != nil || p != PolicyFallback {
		t.Errorf("Expected default fallback, got %q (%v)", p, err)
	}
	if p, err := ParsePolicy("EMPTY"); err != nil || p != PolicyEmpty {
		t.Errorf("Expected empty, got %q (%v)", p, err)
	}
	if _, err := ParsePolicy("retry"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}
