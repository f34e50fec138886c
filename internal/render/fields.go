package render

import (
	"fmt"
	"strconv"

	"github.com/ppiankov/dayfacts/internal/model"
)

const (
	// FallbackTitle is used when a fact has no related page
	FallbackTitle = "Historical Event"
	// LinkLabel is the text of every article link
	LinkLabel = "Read more on Wikipedia"

	yearURLBase = "https://en.wikipedia.org/wiki/"
)

// DisplayFields is everything the card shows for one fact
type DisplayFields struct {
	Title     string `json:"title"`
	Year      string `json:"year"`
	BodyText  string `json:"body_text"`
	ImageURL  string `json:"image_url,omitempty"` // "" hides the image
	LinkURL   string `json:"link_url"`
	LinkLabel string `json:"link_label"`
}

// HasImage reports whether an image should be shown
func (d DisplayFields) HasImage() bool {
	return d.ImageURL != ""
}

// Render maps a fact to display fields. Only the lead page is consulted.
func Render(fact model.FactRecord) DisplayFields {
	fields := DisplayFields{
		Title:     FallbackTitle,
		Year:      FormatYear(fact.Year),
		BodyText:  fact.Text,
		LinkURL:   YearURL(fact.Year),
		LinkLabel: LinkLabel,
	}

	lead, ok := fact.Lead()
	if !ok {
		return fields
	}

	fields.Title = lead.HumanTitle()
	if lead.CanonicalURL != "" {
		fields.LinkURL = lead.CanonicalURL
	}
	fields.ImageURL = lead.Image()
	return fields
}

// FormatYear renders positive years verbatim and others as "N BC"
func FormatYear(year int) string {
	if year > 0 {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%d BC", -year)
}

// YearURL returns the encyclopedia article for a year
func YearURL(year int) string {
	if year > 0 {
		return yearURLBase + strconv.Itoa(year)
	}
	return fmt.Sprintf("%s%d_BC", yearURLBase, -year)
}
