package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns a markdown snippet into terminal output.
type MarkdownRenderer func(string) (string, error)

// NewMarkdownRenderer returns a glamour-backed renderer wrapped to width.
// If glamour cannot be initialised the snippet is returned as-is.
func NewMarkdownRenderer(width int) MarkdownRenderer {
	if width <= 0 {
		width = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return PlainMarkdown
	}
	return func(md string) (string, error) {
		out, err := r.Render(md)
		if err != nil {
			return md, err
		}
		return strings.Trim(out, "\n"), nil
	}
}

// PlainMarkdown returns the snippet unchanged.
func PlainMarkdown(md string) (string, error) {
	return strings.TrimSpace(md), nil
}

const nextStepsMarkdown = `### What happens next?

- Your responses are anonymized before analysis
- NATPAC researchers will analyze travel patterns
- Insights help improve transportation infrastructure
- No personal information is shared or published
`
