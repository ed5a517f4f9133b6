// Package ui prints generation progress to the terminal.
package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Event describes one generated component.
type Event struct {
	ID       string
	Name     string
	Strategy string
	Bytes    int
	Duration time.Duration
}

// Summary closes a successful run.
type Summary struct {
	Generated int
	OutputDir string
	Duration  time.Duration
}

// Reporter writes one line per component. On a terminal each line carries a
// progress bar and unicode status icons; otherwise the output is plain text
// suitable for CI logs.
type Reporter struct {
	out         io.Writer
	styles      styles
	interactive bool
	bar         progress.Model
	total       int
	completed   int
}

// NewReporter writes to out.
func NewReporter(out io.Writer) *Reporter {
	return newReporter(out, IsTerminal(out))
}

func newReporter(out io.Writer, interactive bool) *Reporter {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return &Reporter{
		out:         out,
		styles:      newStyles(lipgloss.NewRenderer(out)),
		interactive: interactive,
		bar:         bar,
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// Start announces a run over total components.
func (r *Reporter) Start(total int) {
	r.total = total
	r.completed = 0
	noun := "components"
	if total == 1 {
		noun = "component"
	}
	fmt.Fprintln(r.out, r.styles.title.Render(fmt.Sprintf("Generating %d %s", total, noun)))
}

// Component reports a generated component.
func (r *Reporter) Component(e Event) {
	r.completed++
	line := fmt.Sprintf("%s %s %s",
		r.styles.success.Render(r.icon(true)),
		r.styles.label.Render(e.ID),
		r.styles.muted.Render(fmt.Sprintf("(%s, %s, %s)", Title(e.Strategy), FormatBytes(e.Bytes), e.Duration.Round(time.Millisecond))),
	)
	if r.interactive {
		line = lipgloss.JoinHorizontal(lipgloss.Left, r.progressView(), "  ", line)
	} else {
		line = fmt.Sprintf("[%d/%d] %s", r.completed, r.total, line)
	}
	fmt.Fprintln(r.out, line)
}

// Fail reports the component that aborted the run.
func (r *Reporter) Fail(id string, err error) {
	subject := id
	if subject == "" {
		subject = "generation"
	}
	fmt.Fprintf(r.out, "%s %s: %v\n",
		r.styles.failure.Render(r.icon(false)),
		r.styles.label.Render(subject),
		err,
	)
}

// Done prints the summary of a successful run.
func (r *Reporter) Done(s Summary) {
	fmt.Fprintln(r.out, r.styles.summary.Render(fmt.Sprintf(
		"Generated %d fragments in %s (%s)", s.Generated, s.OutputDir, s.Duration.Round(time.Millisecond),
	)))
}

func (r *Reporter) progressView() string {
	ratio := 0.0
	if r.total > 0 {
		ratio = math.Min(1.0, float64(r.completed)/float64(r.total))
	}
	label := r.styles.label.Render(fmt.Sprintf("%d/%d", r.completed, r.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", r.bar.ViewAs(ratio))
}

func (r *Reporter) icon(ok bool) string {
	switch {
	case ok && r.interactive:
		return "✓"
	case ok:
		return "[ok]"
	case r.interactive:
		return "✗"
	default:
		return "[fail]"
	}
}

// Title capitalises a lower-case label such as a strategy name.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// FormatBytes renders n with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	suffixes := []string{"KiB", "MiB", "GiB"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + " " + suffixes[i]
}
