package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/dayfacts/internal/sidebar"
)

// Report is the printable result for one day and category
type Report struct {
	Date          string          `json:"date"` // Formatted header date
	Key           string          `json:"key"`  // MM-DD
	Source        string          `json:"source"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Facts         []DisplayFields `json:"facts"`
	Births        []sidebar.Entry `json:"births"`
	Deaths        []sidebar.Entry `json:"deaths"`
	Notice        string          `json:"notice,omitempty"` // Fallback or empty-state message
	Hints         []string        `json:"hints,omitempty"`
}

// Renderer writes reports as JSON, Markdown and styled terminal text
type Renderer struct {
	includeFooter bool
	styles        textStyles
}

type textStyles struct {
	header  lipgloss.Style
	meta    lipgloss.Style
	title   lipgloss.Style
	year    lipgloss.Style
	body    lipgloss.Style
	link    lipgloss.Style
	section lipgloss.Style
	notice  lipgloss.Style
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		styles: textStyles{
			header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			meta:    lipgloss.NewStyle().Faint(true),
			title:   lipgloss.NewStyle().Bold(true),
			year:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			body:    lipgloss.NewStyle().PaddingLeft(2),
			link:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
			section: lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
			notice:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("178")),
		},
	}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// Markdown returns the report as a Markdown document
func (r *Renderer) Markdown(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# On This Day: %s\n\n", report.Date)
	fmt.Fprintf(&b, "_Source: %s · Category: %s_\n\n", report.Source, report.CategoryLabel)

	if report.Notice != "" {
		fmt.Fprintf(&b, "> %s\n", report.Notice)
		for _, hint := range report.Hints {
			fmt.Fprintf(&b, "> - %s\n", hint)
		}
		b.WriteString("\n")
	}

	if len(report.Facts) > 0 {
		b.WriteString("## Facts\n\n")
		for _, f := range report.Facts {
			fmt.Fprintf(&b, "### %s: %s\n\n", f.Year, f.Title)
			fmt.Fprintf(&b, "%s\n\n", f.BodyText)
			if f.HasImage() {
				fmt.Fprintf(&b, "![%s](%s)\n\n", f.Title, f.ImageURL)
			}
			fmt.Fprintf(&b, "[%s](%s)\n\n", f.LinkLabel, f.LinkURL)
		}
	}

	writeEntries(&b, "Notable Births", report.Births)
	writeEntries(&b, "Notable Deaths", report.Deaths)

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n_Generated by dayfacts at %s_\n", report.GeneratedAt.UTC().Format(time.RFC3339))
	}

	return b.String()
}

func writeEntries(b *strings.Builder, heading string, entries []sidebar.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, e := range entries {
		name := e.Name
		if e.Link != "" {
			name = fmt.Sprintf("[%s](%s)", e.Name, e.Link)
		}
		fmt.Fprintf(b, "- **%s** %s: %s\n", FormatYear(e.Year), name, e.Description)
	}
	b.WriteString("\n")
}

// RenderSummary writes the report as styled text
func (r *Renderer) RenderSummary(w io.Writer, report *Report) error {
	s := r.styles
	var lines []string

	lines = append(lines, s.header.Render("On This Day: "+report.Date))
	lines = append(lines, s.meta.Render(fmt.Sprintf("source %s · category %s", report.Source, report.CategoryLabel)))

	if report.Notice != "" {
		lines = append(lines, "", s.notice.Render(report.Notice))
		for _, hint := range report.Hints {
			lines = append(lines, s.notice.Render("  • "+hint))
		}
	}

	for _, f := range report.Facts {
		lines = append(lines, "")
		lines = append(lines, s.year.Render(f.Year)+"  "+s.title.Render(f.Title))
		lines = append(lines, s.body.Render(f.BodyText))
		if f.HasImage() {
			lines = append(lines, s.body.Render(s.meta.Render("image: "+f.ImageURL)))
		}
		lines = append(lines, s.body.Render(s.link.Render(f.LinkURL)))
	}

	lines = append(lines, r.sidebarLines("Notable Births", report.Births)...)
	lines = append(lines, r.sidebarLines("Notable Deaths", report.Deaths)...)

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func (r *Renderer) sidebarLines(heading string, entries []sidebar.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	s := r.styles
	lines := []string{s.section.Render(heading)}
	for _, e := range entries {
		name := s.title.Render(e.Name)
		if e.Link != "" {
			name = s.link.Render(e.Name)
		}
		lines = append(lines, fmt.Sprintf("  %s %s  %s", s.year.Render(FormatYear(e.Year)), name, s.meta.Render(e.Description)))
	}
	return lines
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
