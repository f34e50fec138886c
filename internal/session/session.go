package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ppiankov/dayfacts/internal/category"
	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/selector"
	"github.com/ppiankov/dayfacts/internal/sidebar"
	"github.com/ppiankov/dayfacts/internal/source"
	"github.com/ppiankov/dayfacts/internal/util"
)

// LoadFailedMessage is the only user-facing text for a failed load
const LoadFailedMessage = "Failed to load facts. Please try again later."

// NoFactsMessage is shown when the day has no facts in any category
const NoFactsMessage = "No facts recorded for this day."

// Loader fetches one calendar day's facts
type Loader interface {
	Load(ctx context.Context, month, day int) (*model.Day, error)
}

// Options configures a Session
type Options struct {
	Table      *category.Table
	Category   category.Category
	Policy     category.EmptyPolicy
	Collection string // Day collection feeding the card
	Sidebar    sidebar.Options
	Rand       *rand.Rand // nil uses a randomly seeded source
}

// OptionsFromConfig builds session options from configuration
func OptionsFromConfig(cfg *model.Config) (Options, error) {
	table := category.DefaultTable().Merge(cfg.Categories)

	def, err := table.Lookup(cfg.Selection.Category)
	if err != nil {
		return Options{}, err
	}

	policy, err := category.ParsePolicy(cfg.Selection.EmptyPolicy)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Table:      table,
		Category:   def.Category,
		Policy:     policy,
		Collection: cfg.Source.Collection,
		Sidebar:    sidebar.Options{Min: cfg.Sidebar.Min, Max: cfg.Sidebar.Max},
	}, nil
}

// Session is the state behind one viewer: the loaded day, the active
// category and its working list, and the curated sidebars. It is not safe
// for concurrent use.
type Session struct {
	opts     Options
	rng      *rand.Rand
	selector *selector.Selector

	date    time.Time
	day     *model.Day
	loading bool
	loadErr error

	def      category.Definition
	empty    *category.EmptyResultError
	fellBack bool
	noFacts  bool

	births []sidebar.Entry
	deaths []sidebar.Entry
}

// New creates a Session with no data loaded
func New(opts Options) (*Session, error) {
	if opts.Table == nil {
		opts.Table = category.DefaultTable()
	}
	if opts.Category == "" {
		opts.Category = category.General
	}
	if opts.Policy == "" {
		opts.Policy = category.PolicyFallback
	}
	if opts.Sidebar.Min == 0 && opts.Sidebar.Max == 0 {
		opts.Sidebar = sidebar.DefaultOptions()
	}

	def, err := opts.Table.Lookup(string(opts.Category))
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Session{
		opts:     opts,
		rng:      rng,
		selector: selector.New(rng),
		def:      def,
	}, nil
}

// BeginLoad marks a fetch for date as in flight
func (s *Session) BeginLoad(date time.Time) {
	s.date = date
	s.loading = true
	s.loadErr = nil
}

// Load fetches date through loader and installs the result
func (s *Session) Load(ctx context.Context, loader Loader, date time.Time) error {
	s.BeginLoad(date)
	day, err := loader.Load(ctx, int(date.Month()), date.Day())
	s.Apply(day, err)
	return err
}

// Apply installs the result of a fetch. A failed load is terminal for the
// session: the error is logged and the fixed message shown.
func (s *Session) Apply(day *model.Day, err error) {
	s.loading = false

	if err == nil && day == nil {
		err = errors.New("loader returned no data")
	}
	if err != nil {
		s.loadErr = err
		if source.IsLoadFailure(err) {
			util.Log.WithError(err).Warn("upstream load failed")
		} else {
			util.Log.WithError(err).Error("failed to load facts")
		}
		return
	}

	s.day = day
	s.loadErr = nil
	if s.date.IsZero() {
		s.date = render.DayDate(time.Now(), day.Month, day.Day)
	}

	s.births = sidebar.Curate(day.Births, s.opts.Sidebar, s.rng)
	s.deaths = sidebar.Curate(day.Deaths, s.opts.Sidebar, s.rng)
	s.applyCategory()
}

// SetCategory switches the active category and rebuilds the working list.
// It is a no-op returning false before data arrives.
func (s *Session) SetCategory(name string) (bool, error) {
	def, err := s.opts.Table.Lookup(name)
	if err != nil {
		return false, err
	}
	if s.day == nil {
		return false, nil
	}

	s.def = def
	s.applyCategory()
	return true, nil
}

func (s *Session) applyCategory() {
	res, err := category.Apply(s.day.Facts(s.opts.Collection), s.def, s.opts.Policy)

	var empty *category.EmptyResultError
	if errors.As(err, &empty) {
		s.empty = empty
		s.fellBack = false
		s.noFacts = false
		s.selector.Reset(nil)
		return
	}

	s.empty = nil
	s.fellBack = res.FellBack
	s.noFacts = len(res.Records) == 0
	s.selector.Reset(res.Records)
}

// Next advances to the following fact. It is a no-op before data arrives
// and in the empty state.
func (s *Session) Next() (render.DisplayFields, bool) {
	if s.day == nil || s.empty != nil {
		return render.DisplayFields{}, false
	}
	fact, ok := s.selector.Advance()
	if !ok {
		return render.DisplayFields{}, false
	}
	return render.Render(fact), true
}

// Current returns the fact under the cursor
func (s *Session) Current() (render.DisplayFields, bool) {
	fact, ok := s.selector.Current()
	if !ok {
		return render.DisplayFields{}, false
	}
	return render.Render(fact), true
}

// Loaded reports whether data has arrived
func (s *Session) Loaded() bool {
	return s.day != nil
}

// Day returns the loaded day, or nil
func (s *Session) Day() *model.Day {
	return s.day
}

// Category returns the active category definition
func (s *Session) Category() category.Definition {
	return s.def
}

// Categories returns the category table in display order
func (s *Session) Categories() []category.Definition {
	return s.opts.Table.Definitions
}

// Err returns the load error, if any
func (s *Session) Err() error {
	return s.loadErr
}

// Notice returns the fallback or empty-state message for the active category
func (s *Session) Notice() string {
	switch {
	case s.empty != nil:
		return fmt.Sprintf("No %s facts for this day.", s.empty.Label)
	case s.noFacts:
		return NoFactsMessage
	case s.fellBack:
		return fmt.Sprintf("No %s facts for this day, showing all facts.", s.def.Label)
	default:
		return ""
	}
}

// View is a snapshot of everything a front end draws
type View struct {
	Date          string                     `json:"date"`
	Category      category.Category          `json:"category"`
	CategoryLabel string                     `json:"category_label"`
	Categories    []category.Definition      `json:"categories"`
	Loading       bool                       `json:"loading"`
	Error         string                     `json:"error,omitempty"`
	Fact          *render.DisplayFields      `json:"fact,omitempty"`
	Position      int                        `json:"position"` // One-based; 0 when no fact
	Total         int                        `json:"total"`
	Empty         *category.EmptyResultError `json:"empty,omitempty"`
	Notice        string                     `json:"notice,omitempty"`
	Births        []sidebar.Entry            `json:"births"`
	Deaths        []sidebar.Entry            `json:"deaths"`
}

// View returns the current snapshot
func (s *Session) View() View {
	v := View{
		Category:      s.def.Category,
		CategoryLabel: s.def.Label,
		Categories:    s.Categories(),
		Loading:       s.loading,
		Empty:         s.empty,
		Notice:        s.Notice(),
		Births:        s.births,
		Deaths:        s.deaths,
		Total:         s.selector.Len(),
	}
	if !s.date.IsZero() {
		v.Date = render.FormatDate(s.date)
	}
	if s.loadErr != nil {
		v.Error = LoadFailedMessage
	}
	if fields, ok := s.Current(); ok && s.day != nil {
		v.Fact = &fields
		v.Position = s.selector.Position() + 1
	}
	return v
}

// Report builds a printable report of the first topN facts of the working list
func (s *Session) Report(topN int) (*render.Report, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.day == nil {
		return nil, errors.New("no data loaded")
	}

	view := s.View()
	report := &render.Report{
		Date:          view.Date,
		Key:           s.day.Key(),
		Source:        s.day.Source,
		Category:      string(s.def.Category),
		CategoryLabel: s.def.Label,
		GeneratedAt:   time.Now().UTC(),
		Births:        s.births,
		Deaths:        s.deaths,
		Notice:        view.Notice,
	}
	if s.empty != nil {
		report.Hints = s.empty.Hints
	}

	for _, fact := range s.selector.Top(topN) {
		report.Facts = append(report.Facts, render.Render(fact))
	}
	return report, nil
}
