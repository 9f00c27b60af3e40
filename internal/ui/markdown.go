package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/tessen42/stetho/internal/research"
)

// markdownRenderer wraps a glamour renderer sized for the current
// terminal. Rebuilt on resize; rendering failures fall back to raw text.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(wrap int) *markdownRenderer {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	return &markdownRenderer{renderer: r}
}

// Render renders markdown for terminal display.
func (r *markdownRenderer) Render(text string) string {
	if r == nil || r.renderer == nil {
		return text
	}
	rendered, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	// Strip the trailing whitespace glamour adds
	return strings.TrimRight(rendered, " \n\r\t")
}

// bundleMarkdown composes the markdown document for one day's analyses.
func bundleMarkdown(b *research.AnalysisBundle) string {
	if b == nil || b.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	if b.Date != "" {
		fmt.Fprintf(&sb, "# Daily Analysis for %s\n", b.Date)
	} else {
		sb.WriteString("# Daily Analysis\n")
	}
	for _, sec := range b.Sections() {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", sec.Title, strings.TrimSpace(sec.Body))
	}
	return sb.String()
}

// conversationMarkdown composes the query view transcript.
func conversationMarkdown(q *research.QueryResult) string {
	if q == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Question\n\n%s\n", strings.TrimSpace(q.Query))
	fmt.Fprintf(&sb, "\n## Answer\n\n%s\n", strings.TrimSpace(q.Response))
	if ts := q.ParsedTimestamp(); !ts.IsZero() {
		fmt.Fprintf(&sb, "\nAnswered at %s\n", ts.Format("2006-01-02 15:04:05"))
	}
	return sb.String()
}
