// Package reporter writes command results as styled text or JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/srcindex/pkg/config"
)

// Reporter formats and writes command results.
type Reporter interface {
	// Report writes formatted output for the given report.
	Report(ctx context.Context, report *Report) error
}

// Report is the outcome of one command. Payload is what JSON output
// encodes; Sections are what text output renders.
type Report struct {
	// Command names the command that produced the report.
	Command string

	// Payload is encoded as the "result" of JSON output.
	Payload any

	// Sections are rendered in order by text output.
	Sections []Section
}

// Section is one titled block of text output.
type Section struct {
	// Title heads the block. Empty titles are omitted.
	Title string

	// Fields are aligned label/value pairs.
	Fields []Field

	// Excerpt shows a source line with a caret.
	Excerpt *Excerpt

	// Table lists rows under headers.
	Table *Table

	// Markdown is prose rendered below the other content.
	Markdown string

	// Empty is printed when the section has nothing else to show.
	Empty string
}

// Role selects how a field value is styled.
type Role int

const (
	RolePlain Role = iota
	RoleNode
	RoleLocation
	RoleComment
	RoleDim
	RoleSuccess
	RoleFailure
)

// Field is a labelled value.
type Field struct {
	Label string
	Value string
	Role  Role
}

// Excerpt is a source line and the 0-based column to mark in it.
type Excerpt struct {
	Line   string
	Column int
}

// Table is a list of rows under column headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates the Reporter selected by opts.Format.
func New(opts Options) (Reporter, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
