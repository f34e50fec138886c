package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/util"
)

// FeedSource reads the Wikimedia REST "onthisday" feed
type FeedSource struct {
	fetcher  *Fetcher
	restBase string
}

// NewFeedSource creates a feed source rooted at restBase
func NewFeedSource(fetcher *Fetcher, restBase string) *FeedSource {
	return &FeedSource{
		fetcher:  fetcher,
		restBase: strings.TrimRight(restBase, "/"),
	}
}

// Name returns "feed"
func (s *FeedSource) Name() string {
	return model.SourceFeed
}

// FeedURL returns the feed endpoint for a month/day pair
func (s *FeedSource) FeedURL(month, day int) string {
	return fmt.Sprintf("%s/feed/onthisday/all/%02d/%02d", s.restBase, month, day)
}

// Fetch retrieves and decodes all collections for the given day
func (s *FeedSource) Fetch(ctx context.Context, month, day int) (*model.Day, error) {
	if err := ValidateDate(month, day); err != nil {
		return nil, err
	}

	feedURL := s.FeedURL(month, day)
	body, err := s.fetcher.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	var payload feedResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{URL: feedURL, Err: err}
	}

	result := &model.Day{
		Month:     month,
		Day:       day,
		Source:    s.Name(),
		FetchedAt: now(),
		Selected:  convertRecords(payload.Selected, model.KindSelected),
		Events:    convertRecords(payload.Events, model.KindEvent),
		Births:    convertRecords(payload.Births, model.KindBirth),
		Deaths:    convertRecords(payload.Deaths, model.KindDeath),
		Holidays:  convertRecords(payload.Holidays, model.KindHoliday),
	}

	if result.Total() == 0 {
		return nil, ErrEmptyResult
	}

	util.Log.WithField("date", result.Key()).
		WithField("selected", len(result.Selected)).
		WithField("events", len(result.Events)).
		WithField("births", len(result.Births)).
		WithField("deaths", len(result.Deaths)).
		Debug("feed decoded")

	return result, nil
}

type feedResponse struct {
	Selected []feedRecord `json:"selected"`
	Events   []feedRecord `json:"events"`
	Births   []feedRecord `json:"births"`
	Deaths   []feedRecord `json:"deaths"`
	Holidays []feedRecord `json:"holidays"`
}

type feedRecord struct {
	Text  string     `json:"text"`
	Year  int        `json:"year"`
	Pages []feedPage `json:"pages"`
}

// feedPage is the page summary shape shared by the feed and /page/summary
type feedPage struct {
	Title  string `json:"title"`
	Titles struct {
		Display string `json:"display"`
	} `json:"titles"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail     *feedImage `json:"thumbnail"`
	OriginalImage *feedImage `json:"originalimage"`
	Extract       string     `json:"extract"`
	ExtractHTML   string     `json:"extract_html"`
	Description   string     `json:"description"`
}

type feedImage struct {
	Source string `json:"source"`
}

func convertRecords(records []feedRecord, kind model.Kind) []model.FactRecord {
	out := make([]model.FactRecord, 0, len(records))
	for _, r := range records {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}

		pages := make([]model.PageRef, 0, len(r.Pages))
		for _, p := range r.Pages {
			pages = append(pages, p.toPageRef())
		}

		out = append(out, model.FactRecord{
			Year:  r.Year,
			Text:  text,
			Pages: pages,
			Kind:  kind,
		})
	}
	return out
}

func (p feedPage) toPageRef() model.PageRef {
	ref := model.PageRef{
		Title:        p.Title,
		DisplayTitle: util.HTMLToText(p.Titles.Display),
		CanonicalURL: p.ContentURLs.Desktop.Page,
		Extract:      strings.TrimSpace(p.Extract),
		Description:  p.Description,
	}
	if ref.Extract == "" && p.ExtractHTML != "" {
		ref.Extract = util.HTMLToText(p.ExtractHTML)
	}
	if p.Thumbnail != nil {
		ref.ThumbnailURL = p.Thumbnail.Source
	}
	if p.OriginalImage != nil {
		ref.OriginalImageURL = p.OriginalImage.Source
	}
	return ref
}
