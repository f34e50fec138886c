package model

// FactRecord is one dated entry from an "on this day" collection
type FactRecord struct {
	Year  int       `json:"year"`            // Year of the event (negative for BC)
	Text  string    `json:"text"`            // Descriptive text as published by the source
	Pages []PageRef `json:"pages,omitempty"` // Related pages, most relevant first
	Kind  Kind      `json:"kind,omitempty"`  // Collection the record came from
}

// Kind tags which collection a record belongs to
type Kind string

const (
	KindSelected Kind = "selected" // Editor-curated highlights
	KindEvent    Kind = "event"    // General events
	KindBirth    Kind = "birth"    // Notable births
	KindDeath    Kind = "death"    // Notable deaths
	KindHoliday  Kind = "holiday"  // Holidays and observances (no year)
)

// Lead returns the first related page. Later pages are never consulted for
// title, link, image or description.
func (f FactRecord) Lead() (PageRef, bool) {
	if len(f.Pages) == 0 {
		return PageRef{}, false
	}
	return f.Pages[0], true
}
