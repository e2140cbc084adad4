package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// locateFlags holds the flags for the locate command.
type locateFlags struct {
	inputFlags

	offset int
	line   int
	column int
}

// locateResult is the JSON payload of the locate command.
type locateResult struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func newLocateCommand(state *app) *cobra.Command {
	flags := &locateFlags{}

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Convert between byte offsets and line/column positions",
		Long: `Convert a byte offset to a line/column position, or a line/column
position to a byte offset. Lines are 1-based and columns are 0-based.

Examples:
  srcindex locate -s app.js -a app.json --offset 42
  srcindex locate -s app.js -a app.json --line 3 --column 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.query(cmd, &flags.inputFlags, func(src *indexed) (*reporter.Report, error) {
				return locateReport(cmd, src.code, flags)
			})
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().IntVar(&flags.offset, "offset", -1, "byte offset to convert")
	cmd.Flags().IntVar(&flags.line, "line", 0, "1-based line to convert")
	cmd.Flags().IntVar(&flags.column, "column", 0, "0-based column to convert")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")

	return cmd
}

func locateReport(cmd *cobra.Command, code *sourcecode.SourceCode, flags *locateFlags) (*reporter.Report, error) {
	var result locateResult

	switch {
	case cmd.Flags().Changed("offset"):
		pos, err := code.OffsetToPosition(flags.offset)
		if err != nil {
			return nil, err
		}
		result = locateResult{Offset: flags.offset, Line: pos.Line, Column: pos.Column}

	case cmd.Flags().Changed("line"):
		pos := ast.Position{Line: flags.line, Column: flags.column}
		offset, err := code.PositionToOffset(pos)
		if err != nil {
			return nil, err
		}
		result = locateResult{Offset: offset, Line: pos.Line, Column: pos.Column}

	default:
		return nil, fmt.Errorf("%w: one of --offset or --line is required", ErrMissingInput)
	}

	section := reporter.Section{
		Title: "Location",
		Fields: []reporter.Field{
			{Label: "Offset", Value: strconv.Itoa(result.Offset)},
			{Label: "Position", Value: position(ast.Position{Line: result.Line, Column: result.Column}), Role: reporter.RoleLocation},
		},
	}
	if lines := code.Lines(); result.Line <= len(lines) {
		section.Excerpt = &reporter.Excerpt{Line: lines[result.Line-1], Column: result.Column}
	}

	return &reporter.Report{
		Command:  "locate",
		Payload:  result,
		Sections: []reporter.Section{section},
	}, nil
}
