package pretty

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// minMarkdownWidth keeps word wrapping readable on very narrow terminals.
const minMarkdownWidth = 40

// MarkdownRenderer renders Markdown text for the terminal.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer that wraps at width. Without
// color the plain "notty" style is used.
func NewMarkdownRenderer(colorEnabled bool, width int) *MarkdownRenderer {
	style := glamourstyles.NoTTYStyle
	if colorEnabled {
		style = glamourstyles.DarkStyle
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, minMarkdownWidth)),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}

	return &MarkdownRenderer{renderer: renderer}
}

// Render returns the rendered text with trailing spaces and surrounding
// blank lines trimmed, ending in a newline. The source is returned as is if rendering fails.
func (m *MarkdownRenderer) Render(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	out := markdown
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(markdown); err == nil {
			out = rendered
		}
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n") + "\n"
}
