package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/sidebar"
)

const (
	defaultWidth = 110
	sidebarWidth = 30
)

// loadedMsg carries the result of the single fetch
type loadedMsg struct {
	day *model.Day
	err error
}

// fadeMsg runs a scheduled transition callback inside Update
type fadeMsg struct {
	run func()
}

// tickScheduler turns Fader callbacks into tea.Tick commands, so every
// transition step runs on the bubbletea event loop
type tickScheduler struct {
	pending []tea.Cmd
}

func (s *tickScheduler) AfterFunc(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return fadeMsg{run: fn}
	}))
}

func (s *tickScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Options configures the browser model
type Options struct {
	Session *session.Session
	Loader  session.Loader
	Date    time.Time
	FadeOut time.Duration
	FadeIn  time.Duration
	Keys    *KeyMap // nil uses DefaultKeyMap
}

// Model is the bubbletea model for the fact browser
type Model struct {
	ctx       context.Context
	session   *session.Session
	loader    session.Loader
	date      time.Time
	keys      KeyMap
	spinner   spinner.Model
	fader     *render.Fader
	scheduler *tickScheduler
	width     int
	height    int
}

// New creates the browser model. The fetch starts from Init.
func New(ctx context.Context, opts Options) Model {
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	sched := &tickScheduler{}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	opts.Session.BeginLoad(opts.Date)

	return Model{
		ctx:       ctx,
		session:   opts.Session,
		loader:    opts.Loader,
		date:      opts.Date,
		keys:      keys,
		spinner:   s,
		fader:     render.NewFader(render.NewTransition(opts.FadeOut, opts.FadeIn), sched, nil),
		scheduler: sched,
		width:     defaultWidth,
	}
}

// Init starts the spinner and the fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	ctx, loader, date := m.ctx, m.loader, m.date
	return func() tea.Msg {
		day, err := loader.Load(ctx, int(date.Month()), date.Day())
		return loadedMsg{day: day, err: err}
	}
}

// Update handles keys, the fetch result and transition ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.session.Apply(msg.day, msg.err)
		m.showCurrent()
		return m, m.scheduler.drain()

	case fadeMsg:
		msg.run()
		return m, m.scheduler.drain()

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if fields, ok := m.session.Next(); ok {
			m.fader.Show(fields)
		}
		return m, m.scheduler.drain()

	case key.Matches(msg, m.keys.NextCategory):
		defs := m.session.Categories()
		current := m.session.Category().Category
		for i, def := range defs {
			if def.Category == current {
				m.selectCategory(string(defs[(i+1)%len(defs)].Category))
				break
			}
		}
		return m, m.scheduler.drain()
	}

	defs := m.session.Categories()
	for i, binding := range m.keys.Categories {
		if i < len(defs) && key.Matches(msg, binding) {
			m.selectCategory(string(defs[i].Category))
			return m, m.scheduler.drain()
		}
	}

	return m, nil
}

func (m Model) selectCategory(name string) {
	changed, err := m.session.SetCategory(name)
	if err != nil || !changed {
		return
	}
	m.showCurrent()
}

// showCurrent puts the cursor's fact on the card. The first fact has nothing
// to fade out from and appears at once.
func (m Model) showCurrent() {
	fields, ok := m.session.Current()
	if !ok {
		return
	}
	transition := m.fader.Transition()
	if _, shown := transition.Shown(); !shown {
		transition.Show(fields)
		return
	}
	m.fader.Show(fields)
}

func (m Model) loading() bool {
	return m.session.View().Loading
}

// View renders the browser
func (m Model) View() string {
	v := m.session.View()

	sections := []string{m.renderHeader(v), m.renderCategories(v), ""}

	switch {
	case v.Loading:
		sections = append(sections, m.spinner.View()+" Loading facts…")
	case v.Error != "":
		sections = append(sections, errorStyle.Render(v.Error))
	default:
		sections = append(sections, m.renderBody(v))
	}

	sections = append(sections, "", m.renderStatus(v))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(v session.View) string {
	return headerStyle.Render("On This Day") + "  " + dateStyle.Render(v.Date)
}

func (m Model) renderCategories(v session.View) string {
	var tabs []string
	for i, def := range v.Categories {
		label := fmt.Sprintf("%d %s", i+1, def.Label)
		if def.Category == v.Category {
			tabs = append(tabs, activeCategoryStyle.Render(label))
		} else {
			tabs = append(tabs, categoryStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody(v session.View) string {
	cardWidth := m.width - 2*sidebarWidth - 4
	narrow := cardWidth < 40
	if narrow {
		cardWidth = m.width - 4
	}
	if cardWidth < 20 {
		cardWidth = 20
	}

	card := cardStyle.Width(cardWidth).Render(m.renderCard(v))
	births := renderSidebar("Notable Births", v.Births)
	deaths := renderSidebar("Notable Deaths", v.Deaths)

	if narrow {
		return lipgloss.JoinVertical(lipgloss.Left, card, births, deaths)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, births, card, deaths)
}

func (m Model) renderCard(v session.View) string {
	if v.Empty != nil {
		lines := []string{noticeStyle.Render(fmt.Sprintf("No %s facts for this day.", v.Empty.Label))}
		for _, hint := range v.Empty.Hints {
			lines = append(lines, faintStyle.Render("• "+hint))
		}
		return strings.Join(lines, "\n")
	}
	if v.Fact == nil && v.Notice != "" {
		return noticeStyle.Render(v.Notice)
	}

	transition := m.fader.Transition()
	fields, ok := transition.Shown()
	if !ok {
		return faintStyle.Render("…")
	}

	lines := []string{
		yearStyle.Render(fields.Year),
		titleStyle.Render(fields.Title),
		"",
		fields.BodyText,
	}
	if fields.HasImage() {
		lines = append(lines, "", faintStyle.Render("image: "+fields.ImageURL))
	}
	lines = append(lines, "", linkStyle.Render(fields.LinkLabel)+" "+faintStyle.Render(fields.LinkURL))

	content := strings.Join(lines, "\n")
	if transition.Phase() != render.PhaseIdle {
		return faintStyle.Render(content)
	}
	return content
}

func renderSidebar(heading string, entries []sidebar.Entry) string {
	lines := []string{sidebarHeadingStyle.Render(heading)}
	for _, e := range entries {
		name := titleStyle.Render(e.Name)
		if e.Link != "" {
			name = linkStyle.Render(e.Name)
		}
		lines = append(lines, yearStyle.Render(render.FormatYear(e.Year))+" "+name)
		if e.Description != "" {
			lines = append(lines, faintStyle.Render(e.Description))
		}
	}
	return sidebarStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(v session.View) string {
	var parts []string
	if v.Fact != nil {
		parts = append(parts, fmt.Sprintf("Fact %d of %d", v.Position, v.Total))
	}
	if v.Notice != "" && v.Fact != nil {
		parts = append(parts, noticeStyle.Render(v.Notice))
	}
	parts = append(parts, helpStyle.Render("n next · 1-9/tab category · q quit"))
	return strings.Join(parts, "  ")
}
