package pretty

import (
	"fmt"
	"strings"
)

const sectionDividerWidth = 40

// Field is one labelled value of a section.
type Field struct {
	Label string
	Value string
}

// FormatSection formats a titled block of aligned label/value pairs.
// Values are rendered as given so callers can pre-style them.
func (s *Styles) FormatSection(title string, fields []Field) string {
	var builder strings.Builder

	if title != "" {
		builder.WriteString(s.Title.Render(title))
		builder.WriteString("\n")
		builder.WriteString(s.Dim.Render(strings.Repeat("-", sectionDividerWidth)))
		builder.WriteString("\n")
	}

	labelWidth := 0
	for _, field := range fields {
		labelWidth = max(labelWidth, len(field.Label))
	}

	for _, field := range fields {
		label := fmt.Sprintf("%-*s", labelWidth+1, field.Label+":")
		builder.WriteString("  " + s.Label.Render(label) + " " + field.Value + "\n")
	}

	return builder.String()
}

// FormatVerdict renders a yes/no outcome.
func (s *Styles) FormatVerdict(ok bool, yes, no string) string {
	if ok {
		return s.Success.Render(yes)
	}
	return s.Failure.Render(no)
}
