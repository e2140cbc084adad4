package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/srcindex/internal/ui/pretty"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts     Options
	styles   *pretty.Styles
	tables   *pretty.TableFormatter
	markdown *pretty.MarkdownRenderer
	bw       *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:     opts,
		styles:   styles,
		tables:   pretty.NewTableFormatter(styles, width),
		markdown: pretty.NewMarkdownRenderer(colorEnabled, width),
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		return nil
	}

	for i, section := range report.Sections {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		r.writeSection(section)
	}

	return nil
}

// writeSection renders one section.
func (r *TextReporter) writeSection(section Section) {
	fields := make([]pretty.Field, 0, len(section.Fields))
	for _, field := range section.Fields {
		fields = append(fields, pretty.Field{Label: field.Label, Value: r.styleValue(field)})
	}

	prose := r.markdown.Render(section.Markdown)

	hasContent := len(fields) > 0 || section.Excerpt != nil || prose != "" ||
		(section.Table != nil && len(section.Table.Rows) > 0)

	if section.Title != "" || len(fields) > 0 {
		fmt.Fprint(r.bw, r.styles.FormatSection(section.Title, fields))
	}

	if section.Excerpt != nil {
		fmt.Fprint(r.bw, r.styles.FormatSourceContext(section.Excerpt.Line, section.Excerpt.Column))
	}

	if section.Table != nil {
		fmt.Fprint(r.bw, r.tables.FormatTable(pretty.Table{
			Headers: section.Table.Headers,
			Rows:    section.Table.Rows,
		}))
	}

	fmt.Fprint(r.bw, prose)

	if !hasContent && section.Empty != "" {
		fmt.Fprintln(r.bw, "  "+r.styles.Dim.Render(section.Empty))
	}
}

// styleValue applies the style selected by the field's role.
func (r *TextReporter) styleValue(field Field) string {
	switch field.Role {
	case RoleNode:
		return r.styles.NodeType.Render(field.Value)
	case RoleLocation:
		return r.styles.Location.Render(field.Value)
	case RoleComment:
		return r.styles.Comment.Render(field.Value)
	case RoleDim:
		return r.styles.Dim.Render(field.Value)
	case RoleSuccess:
		return r.styles.Success.Render(field.Value)
	case RoleFailure:
		return r.styles.Failure.Render(field.Value)
	default:
		return r.styles.Value.Render(field.Value)
	}
}
