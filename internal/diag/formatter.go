package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	w           io.Writer
	sourceCache map[string]string // Cache of source files by filename

	header  map[Severity]lipgloss.Style
	gutter  lipgloss.Style
	marker  lipgloss.Style
	message lipgloss.Style
}

// NewFormatter creates a formatter writing to w. Styles are bound to w, so
// color is only emitted when w is a color-capable terminal. Passing
// noColor=true disables styling regardless of w.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r = lipgloss.NewRenderer(io.Discard)
	}

	return &Formatter{
		w:           w,
		sourceCache: make(map[string]string),
		header: map[Severity]lipgloss.Style{
			SeverityError:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
			SeverityWarning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
			SeverityNote:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		},
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		marker:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		message: r.NewStyle().Bold(true),
	}
}

// AddSource registers in-memory source text for filename so snippets can be
// printed without touching the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints a diagnostic with its source line and an underline.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil || src == "" {
		// Fallback to simple format if the source is unavailable
		fmt.Fprintf(f.w, "  %s %s\n", f.gutter.Render("-->"), d.Span.String())
		f.printHelp(d)
		return
	}

	f.printSnippet(src, d)
	f.printHelp(d)
}

// FormatAll prints every diagnostic in order, separated by blank lines.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		f.Format(d)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}

	style, ok := f.header[severity]
	if !ok {
		style = f.header[SeverityError]
	}

	label := string(severity)
	if d.Code != "" {
		label = fmt.Sprintf("%s[%s]", severity, d.Code)
	}
	fmt.Fprintf(f.w, "%s: %s\n", style.Render(label), f.message.Render(d.Message))
}

// printSnippet prints the offending line with one line of context above it.
func (f *Formatter) printSnippet(src string, d Diagnostic) {
	lines := strings.Split(src, "\n")
	line := d.Span.Line
	if line > len(lines) {
		fmt.Fprintf(f.w, "  %s %s\n", f.gutter.Render("-->"), d.Span.String())
		return
	}

	contextStart := max(1, line-1)
	lineNumWidth := len(fmt.Sprintf("%d", line))
	pad := strings.Repeat(" ", lineNumWidth)

	fmt.Fprintf(f.w, "  %s %s\n", f.gutter.Render("-->"), d.Span.String())
	fmt.Fprintf(f.w, " %s %s\n", pad, f.gutter.Render("|"))

	for n := contextStart; n <= line; n++ {
		num := fmt.Sprintf("%*d", lineNumWidth, n)
		fmt.Fprintf(f.w, " %s %s\n", f.gutter.Render(num+" |"), expandTabs(lines[n-1]))
	}

	// Tabs are expanded in the echoed line, so the underline offset must be
	// computed against the same expansion.
	prefix := lines[line-1]
	col := d.Span.Column - 1
	if col > len([]rune(prefix)) {
		col = len([]rune(prefix))
	}
	offset := len([]rune(expandTabs(string([]rune(prefix)[:col]))))
	underline := strings.Repeat(" ", offset) + f.marker.Render(strings.Repeat("^", d.Span.Width()))
	if d.Label != "" {
		underline += " " + f.marker.Render(d.Label)
	}
	fmt.Fprintf(f.w, " %s %s\n", pad, f.gutter.Render("|")+" "+underline)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
