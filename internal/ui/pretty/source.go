package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// sourceIndent aligns excerpts under section values.
const sourceIndent = "    "

// FormatPosition renders a 1-based line and 0-based column as "line:column".
func (s *Styles) FormatPosition(line, column int) string {
	return s.Location.Render(fmt.Sprintf("%d:%d", line, column))
}

// FormatRange renders a half-open byte range as "[start, end)".
func (s *Styles) FormatRange(start, end int) string {
	return s.Location.Render(fmt.Sprintf("[%d, %d)", start, end))
}

// FormatNode renders a node type with its byte range.
func (s *Styles) FormatNode(nodeType string, start, end int) string {
	return s.NodeType.Render(nodeType) + " " + s.FormatRange(start, end)
}

// FormatComment renders a comment with its delimiters restored.
func (s *Styles) FormatComment(kind, value string) string {
	switch kind {
	case "Line":
		return s.Comment.Render("//" + value)
	case "Block":
		return s.Comment.Render("/*" + value + "*/")
	case "Shebang":
		return s.Comment.Render("#!" + value)
	default:
		return s.Comment.Render(value)
	}
}

// FormatSourceContext formats the source line with a caret under the
// 0-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(sourceIndent + s.renderSource(expandTabs(line)) + "\n")

	if column >= 0 && column <= len(line) {
		padding := sourceIndent + strings.Repeat(" ", visualWidth(line[:column]))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func (s *Styles) renderSource(line string) string {
	if s.highlight != nil {
		return s.highlight(line)
	}
	return s.SourceLine.Render(line)
}

// expandTabs replaces tabs with single spaces so that the caret lines up.
func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", " ")
}

// visualWidth is the number of terminal cells a line prefix occupies.
func visualWidth(prefix string) int {
	return runewidth.StringWidth(expandTabs(prefix))
}
