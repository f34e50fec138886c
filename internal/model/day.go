package model

import (
	"fmt"
	"time"
)

// Day holds everything fetched for one month/day pair.
// It is created once per load and never mutated afterwards.
type Day struct {
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Source    string    `json:"source"`     // Source that produced the data (feed, sparql)
	FetchedAt time.Time `json:"fetched_at"` // When the fetch completed

	Selected []FactRecord `json:"selected,omitempty"`
	Events   []FactRecord `json:"events,omitempty"`
	Births   []FactRecord `json:"births,omitempty"`
	Deaths   []FactRecord `json:"deaths,omitempty"`
	Holidays []FactRecord `json:"holidays,omitempty"`
}

// Collection names accepted by Day.Collection
const (
	CollectionSelected = "selected"
	CollectionEvents   = "events"
	CollectionBirths   = "births"
	CollectionDeaths   = "deaths"
	CollectionHolidays = "holidays"
)

// Collection returns the named collection, or nil for unknown names
func (d *Day) Collection(name string) []FactRecord {
	switch name {
	case CollectionSelected:
		return d.Selected
	case CollectionEvents:
		return d.Events
	case CollectionBirths:
		return d.Births
	case CollectionDeaths:
		return d.Deaths
	case CollectionHolidays:
		return d.Holidays
	default:
		return nil
	}
}

// Facts returns the collection that feeds the main card. The selected
// collection is the default; events stand in when it is empty.
func (d *Day) Facts(name string) []FactRecord {
	if name == "" {
		name = CollectionSelected
	}
	facts := d.Collection(name)
	if len(facts) == 0 && name == CollectionSelected {
		facts = d.Events
	}
	return facts
}

// Total returns the number of records across all collections
func (d *Day) Total() int {
	return len(d.Selected) + len(d.Events) + len(d.Births) + len(d.Deaths) + len(d.Holidays)
}

// Key returns the zero-padded "MM-DD" form of the date
func (d *Day) Key() string {
	return DateKey(d.Month, d.Day)
}

// DateKey formats a month/day pair as "MM-DD"
func DateKey(month, day int) string {
	return fmt.Sprintf("%02d-%02d", month, day)
}
