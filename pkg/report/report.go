// Package report produces the operator-facing output of a sync run: progress
// lines, the ruled before/after diff of every changed field, and the final
// status banner. The diff body is rendered through a pongo2 template so
// installations can swap in their own format; styling is plain lipgloss.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formsync/pkg/syncer"
)

const (
	defaultTemplate = "templates/report"
	ruleWidth       = 80
)

// Option customises a Reporter.
type Option func(*Reporter)

// WithOutput redirects report output. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.out = w
		}
	}
}

// WithTemplateFile renders the diff body with an operator-supplied template
// file instead of the embedded default.
func WithTemplateFile(path string) Option {
	return func(r *Reporter) {
		r.templateFile = strings.TrimSpace(path)
	}
}

// WithColor toggles ANSI styling. Defaults to on; pass false for plain text.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// Reporter writes human-readable run output. It is not a machine interface.
type Reporter struct {
	out          io.Writer
	engine       *Engine
	templateName string
	templateFile string
	color        bool

	ruleStyle lipgloss.Style
	okStyle   lipgloss.Style
	errStyle  lipgloss.Style
	oldStyle  lipgloss.Style
	newStyle  lipgloss.Style
}

// New constructs a Reporter. The embedded report template is used unless
// WithTemplateFile points somewhere else.
func New(options ...Option) (*Reporter, error) {
	r := &Reporter{
		out:          os.Stdout,
		templateName: defaultTemplate,
		color:        true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.templateFile != "" {
		engine, err := NewEngine(
			WithBaseDir(filepath.Dir(r.templateFile)),
			WithExtension(filepath.Ext(r.templateFile)),
		)
		if err != nil {
			return nil, err
		}
		r.engine = engine
		r.templateName = filepath.Base(r.templateFile)
	} else {
		engine, err := NewEngine(WithFS(embeddedTemplates))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}

	if r.color {
		r.ruleStyle = lipgloss.NewStyle().Faint(true)
		r.okStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
		r.errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
		r.oldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		r.newStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}

	return r, nil
}

// Progressf prints a plain progress line.
func (r *Reporter) Progressf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// SourceSummary prints how many authoritative labels the template provided.
func (r *Reporter) SourceSummary(res *syncer.Result) {
	fmt.Fprintf(r.out, "\nFound %d labels in %s translations\n", res.SourceLabels, res.Language)
}

// Diff renders the before/after block for every update in the result.
func (r *Reporter) Diff(res *syncer.Result) error {
	updates := make([]map[string]any, 0, len(res.Updates))
	for _, u := range res.Updates {
		updates = append(updates, map[string]any{
			"field": u.Field,
			"old":   r.oldStyle.Render(u.OldLabel()),
			"new":   r.newStyle.Render(u.NewLabel()),
		})
	}

	body, err := r.engine.Render(r.templateName, map[string]any{
		"rule":    r.rule(),
		"count":   len(res.Updates),
		"updates": updates,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "\n%s\n", strings.TrimRight(body, "\n"))
	return nil
}

// InSync prints the nothing-to-do banner.
func (r *Reporter) InSync() {
	r.banner(r.okStyle.Render("[OK] All translations are already in sync with webform labels"))
}

// Updated prints the success banner after a write.
func (r *Reporter) Updated(count int) {
	r.banner(r.okStyle.Render(fmt.Sprintf("[OK] Successfully updated %d field(s)", count)))
}

// Failure prints an error banner.
func (r *Reporter) Failure(msg string) {
	r.banner(r.errStyle.Render("[ERROR] " + msg))
}

func (r *Reporter) banner(msg string) {
	rule := r.rule()
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", rule, msg, rule)
}

func (r *Reporter) rule() string {
	return r.ruleStyle.Render(strings.Repeat("=", ruleWidth))
}
