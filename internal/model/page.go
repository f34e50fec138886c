package model

import "strings"

// PageRef is a reference to an encyclopedia article attached to a fact
type PageRef struct {
	Title            string `json:"title"`                        // Canonical title (underscored)
	DisplayTitle     string `json:"display_title,omitempty"`      // Human-readable title, may contain markup
	CanonicalURL     string `json:"canonical_url"`                // Desktop article URL
	ThumbnailURL     string `json:"thumbnail_url,omitempty"`      // Thumbnail image, if any
	OriginalImageURL string `json:"original_image_url,omitempty"` // Full-size image, if any
	Extract          string `json:"extract,omitempty"`            // Plain-text summary
	Description      string `json:"description,omitempty"`        // Short description (e.g. "American astronaut")
}

// HumanTitle returns the title with underscores replaced by spaces
func (p PageRef) HumanTitle() string {
	return strings.ReplaceAll(p.Title, "_", " ")
}

// Image returns the thumbnail when present, else the original image, else ""
func (p PageRef) Image() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.OriginalImageURL
}
