package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minColumnWidth = 4
	heavySeparator = "="
	lightSeparator = "-"
)

// Table is a list of rows under column headers. The last column absorbs
// any shrinking needed to fit the terminal width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// TableFormatter formats tables as styled text.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats a table. An empty table renders as the empty string.
func (t *TableFormatter) FormatTable(table Table) string {
	if len(table.Headers) == 0 || len(table.Rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(table)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(formatCells(table.Headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range table.Rows {
		builder.WriteString(formatCells(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(table Table) []int {
	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = max(minColumnWidth, len(header))
	}

	for _, row := range table.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	// Constrain to terminal width by shrinking the last column.
	if total := totalWidth(widths); total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
	}

	return widths
}

// totalWidth calculates the table width from column widths.
func totalWidth(widths []int) int {
	total := 1
	for _, width := range widths {
		total += width + tablePadding
	}
	return total
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

// formatCells pads and truncates cells to the column widths.
func formatCells(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteString(" ")

	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncateString(cells[i], width)
		}
		if i == len(widths)-1 {
			builder.WriteString(cell)
			break
		}
		fmt.Fprintf(&builder, "%-*s", width+tablePadding, cell)
	}

	return builder.String()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
