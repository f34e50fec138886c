package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/util"
	"github.com/ppiankov/dayfacts/internal/worker"
)

const sparqlQueryTemplate = `SELECT ?entity ?entityLabel ?date ?article WHERE {
  ?entity wdt:P31/wdt:P279* wd:Q1190554;
          wdt:P585 ?date.
  FILTER(MONTH(?date) = %d && DAY(?date) = %d)
  OPTIONAL {
    ?article schema:about ?entity;
             schema:isPartOf <https://en.wikipedia.org/>.
  }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
LIMIT %d`

// SparqlOptions configures the graph-query source
type SparqlOptions struct {
	Endpoint string // Query service URL
	RESTBase string // REST root used for page summaries
	Limit    int    // Max entities per query
	Workers  int    // Concurrent summary lookups
}

// SparqlSource queries Wikidata for dated occurrences and enriches each
// with its English Wikipedia summary
type SparqlSource struct {
	fetcher *Fetcher
	opts    SparqlOptions
}

// NewSparqlSource creates a graph-query source
func NewSparqlSource(fetcher *Fetcher, opts SparqlOptions) *SparqlSource {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	opts.RESTBase = strings.TrimRight(opts.RESTBase, "/")
	return &SparqlSource{fetcher: fetcher, opts: opts}
}

// Name returns "sparql"
func (s *SparqlSource) Name() string {
	return model.SourceSPARQL
}

// Query returns the SPARQL text for a month/day pair
func (s *SparqlSource) Query(month, day int) string {
	return fmt.Sprintf(sparqlQueryTemplate, month, day, s.opts.Limit)
}

// Fetch runs the query and resolves article summaries concurrently
func (s *SparqlSource) Fetch(ctx context.Context, month, day int) (*model.Day, error) {
	if err := ValidateDate(month, day); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("query", s.Query(month, day))
	form.Set("format", "json")

	body, err := s.fetcher.PostForm(ctx, s.opts.Endpoint, form)
	if err != nil {
		return nil, err
	}

	entities, err := parseBindings(body)
	if err != nil {
		return nil, &ParseError{URL: s.opts.Endpoint, Err: err}
	}
	if len(entities) == 0 {
		return nil, ErrEmptyResult
	}

	events := s.resolve(ctx, entities)
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{URL: s.opts.Endpoint, Err: err}
	}

	selected := make([]model.FactRecord, len(events))
	for i, e := range events {
		e.Kind = model.KindSelected
		selected[i] = e
	}

	return &model.Day{
		Month:     month,
		Day:       day,
		Source:    s.Name(),
		FetchedAt: now(),
		Selected:  selected,
		Events:    events,
	}, nil
}

// entity is one deduplicated query binding
type entity struct {
	URI     string
	Label   string
	Year    int
	Article string // Article URL, "" when the entity has none
}

// parseBindings reads result bindings, dropping rows without a usable
// label or date and keeping the first row per entity
func parseBindings(body []byte) ([]entity, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON")
	}

	bindings := gjson.GetBytes(body, "results.bindings")
	if !bindings.IsArray() {
		return nil, fmt.Errorf("missing results.bindings")
	}

	var entities []entity
	seen := make(map[string]bool)

	bindings.ForEach(func(_, row gjson.Result) bool {
		uri := row.Get("entity.value").String()
		label := strings.TrimSpace(row.Get("entityLabel.value").String())
		year, ok := yearFromDate(row.Get("date.value").String())
		if !ok || label == "" || seen[uri] {
			return true
		}
		// Unlabelled entities come back with their Q-id as label
		if uri != "" && strings.HasSuffix(uri, "/"+label) {
			return true
		}
		seen[uri] = true
		entities = append(entities, entity{
			URI:     uri,
			Label:   label,
			Year:    year,
			Article: row.Get("article.value").String(),
		})
		return true
	})

	return entities, nil
}

// yearFromDate extracts the signed year from an xsd:dateTime such as
// "1969-07-20T00:00:00Z" or "-0044-03-15T00:00:00Z"
func yearFromDate(value string) (int, bool) {
	value = strings.TrimSpace(value)
	negative := strings.HasPrefix(value, "-")
	value = strings.TrimLeft(value, "+-")

	idx := strings.IndexByte(value, '-')
	if idx <= 0 {
		return 0, false
	}

	year, err := strconv.Atoi(value[:idx])
	if err != nil {
		return 0, false
	}
	if negative {
		year = -year
	}
	return year, true
}

// resolve turns entities into records, fetching summaries on the worker pool
func (s *SparqlSource) resolve(ctx context.Context, entities []entity) []model.FactRecord {
	records := make([]model.FactRecord, len(entities))
	var jobs []worker.Job

	for i, e := range entities {
		records[i] = model.FactRecord{Year: e.Year, Text: e.Label, Kind: model.KindEvent}
		if e.Article == "" {
			continue
		}
		jobs = append(jobs, &summaryJob{
			index:   i,
			entity:  e,
			fetcher: s.fetcher,
			url:     s.summaryURL(e.Article),
		})
	}

	if len(jobs) > 0 {
		pool := worker.NewPool(ctx, s.opts.Workers)
		for _, r := range pool.Run(jobs) {
			res := r.(*summaryResult)
			if res.err != nil {
				util.Log.WithError(res.err).WithField("entity", res.label).Debug("summary unavailable, using label")
				continue
			}
			records[res.index].Pages = []model.PageRef{res.page}
			if res.page.Extract != "" {
				records[res.index].Text = res.page.Extract
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Year > records[j].Year
	})
	return records
}

// summaryURL maps an article URL to its REST summary endpoint. The article
// path segment is already escaped and is reused as-is.
func (s *SparqlSource) summaryURL(articleURL string) string {
	return s.opts.RESTBase + "/page/summary/" + articleSegment(articleURL)
}

type summaryJob struct {
	index   int
	entity  entity
	fetcher *Fetcher
	url     string
}

type summaryResult struct {
	index int
	label string
	page  model.PageRef
	err   error
}

func (r *summaryResult) GetError() error {
	return r.err
}

func (j *summaryJob) Execute(ctx context.Context) worker.Result {
	result := &summaryResult{index: j.index, label: j.entity.Label}

	body, err := j.fetcher.Get(ctx, j.url)
	if err != nil {
		result.err = err
		return result
	}

	var page feedPage
	if err := json.Unmarshal(body, &page); err != nil {
		result.err = &ParseError{URL: j.url, Err: err}
		return result
	}

	result.page = page.toPageRef()
	if result.page.CanonicalURL == "" {
		result.page.CanonicalURL = j.entity.Article
	}
	if result.page.Title == "" {
		if title, err := url.PathUnescape(articleSegment(j.entity.Article)); err == nil {
			result.page.Title = title
		}
	}
	return result
}

func articleSegment(articleURL string) string {
	if idx := strings.LastIndex(articleURL, "/wiki/"); idx >= 0 {
		return articleURL[idx+len("/wiki/"):]
	}
	return articleURL
}
