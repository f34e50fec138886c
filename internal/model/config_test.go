package model

import "testing"

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if cfg.Sidebar.Min != 5 || cfg.Sidebar.Max != 5 {
		t.Errorf("Expected sidebar bounds 5/5, got %d/%d", cfg.Sidebar.Min, cfg.Sidebar.Max)
	}
	if cfg.HTTP.Retries != 0 {
		t.Errorf("Expected no retries by default, got %d", cfg.HTTP.Retries)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad source", func(c *Config) { c.Source.Kind = "jsonp" }},
		{"bad policy", func(c *Config) { c.Selection.EmptyPolicy = "guess" }},
		{"sidebar max below min", func(c *Config) { c.Sidebar.Max = 2 }},
		{"negative sidebar", func(c *Config) { c.Sidebar.Min = -1 }},
		{"zero top n", func(c *Config) { c.Selection.TopN = 0 }},
		{"negative retries", func(c *Config) { c.HTTP.Retries = -1 }},
		{"unnamed category", func(c *Config) {
			c.Categories = []CategoryConfig{{Include: []string{"x"}}}
		}},
		{"category without keywords", func(c *Config) {
			c.Categories = []CategoryConfig{{Name: "space"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestDay_Facts(t *testing.T) {
	day := &Day{
		Events: []FactRecord{{Year: 1969, Text: "event"}},
	}

	facts := day.Facts("")
	if len(facts) != 1 || facts[0].Text != "event" {
		t.Errorf("Expected events to stand in for empty selected, got %v", facts)
	}

	day.Selected = []FactRecord{{Year: 1970, Text: "selected"}}
	facts = day.Facts(CollectionSelected)
	if len(facts) != 1 || facts[0].Text != "selected" {
		t.Errorf("Expected selected collection, got %v", facts)
	}

	if day.Collection("unknown") != nil {
		t.Error("Expected nil for unknown collection")
	}
}

func TestPageRef_Image(t *testing.T) {
	page := PageRef{OriginalImageURL: "https://img/original.jpg"}
	if page.Image() != "https://img/original.jpg" {
		t.Errorf("Expected original image fallback, got %q", page.Image())
	}

	page.ThumbnailURL = "https://img/thumb.jpg"
	if page.Image() != "https://img/thumb.jpg" {
		t.Errorf("Expected thumbnail to win, got %q", page.Image())
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(7, 4); got != "07-04" {
		t.Errorf("Expected 07-04, got %s", got)
	}
}
