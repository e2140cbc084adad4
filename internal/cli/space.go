package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// spaceFlags holds the flags for the space command.
type spaceFlags struct {
	inputFlags

	from   int
	to     int
	legacy bool
}

// spaceResult is the JSON payload of the space command.
type spaceResult struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Space   bool   `json:"space"`
	JSXText bool   `json:"jsxText"`
}

func newSpaceCommand(state *app) *cobra.Command {
	flags := &spaceFlags{}

	cmd := &cobra.Command{
		Use:   "space",
		Short: "Check whether whitespace separates two tokens or nodes",
		Long: `Resolve the token (or, failing that, the deepest node) starting at each
of two byte offsets and report whether any whitespace separates them.
Comments between the two count as content, not as space.

With --jsx-text, or jsx_text_spacing set in the configuration, whitespace
inside JSX text between the two also counts as space.

Examples:
  srcindex space -s app.js -a app.json --from 0 --to 9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			legacy := flags.legacy || state.cfg.JSXTextSpacing
			return state.query(cmd, &flags.inputFlags, func(src *indexed) (*reporter.Report, error) {
				return spaceReport(src.code, flags.from, flags.to, legacy)
			})
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().IntVar(&flags.from, "from", 0, "byte offset where the first token or node starts")
	cmd.Flags().IntVar(&flags.to, "to", 0, "byte offset where the second token or node starts")
	cmd.Flags().BoolVar(&flags.legacy, "jsx-text", false, "count whitespace inside JSX text as space")

	return cmd
}

func spaceReport(code *sourcecode.SourceCode, from, to int, legacy bool) (*reporter.Report, error) {
	first, err := itemAt(code, from)
	if err != nil {
		return nil, err
	}
	second, err := itemAt(code, to)
	if err != nil {
		return nil, err
	}

	result := spaceResult{
		From:    describeItem(first),
		To:      describeItem(second),
		JSXText: legacy,
	}
	if legacy {
		result.Space = code.IsSpaceBetweenLegacy(first, second)
	} else {
		result.Space = code.IsSpaceBetween(first, second)
	}

	verdict := reporter.Field{Label: "Space", Value: "no", Role: reporter.RoleFailure}
	if result.Space {
		verdict = reporter.Field{Label: "Space", Value: "yes", Role: reporter.RoleSuccess}
	}

	return &reporter.Report{
		Command: "space",
		Payload: result,
		Sections: []reporter.Section{{
			Title: "Spacing",
			Fields: []reporter.Field{
				{Label: "From", Value: result.From, Role: reporter.RoleNode},
				{Label: "To", Value: result.To, Role: reporter.RoleNode},
				{Label: "JSX text", Value: yesNo(legacy), Role: reporter.RoleDim},
				verdict,
			},
		}},
	}, nil
}

// itemAt returns the token or comment starting at offset, or the deepest
// node containing it.
func itemAt(code *sourcecode.SourceCode, offset int) (ast.Ranged, error) {
	if err := checkOffset(code, offset); err != nil {
		return nil, err
	}
	if tok := code.TokenByRangeStart(offset, true); tok != nil {
		return tok, nil
	}
	if node := code.NodeAt(offset); node != nil {
		return node, nil
	}
	return nil, fmt.Errorf("%w: nothing starts at offset %d", sourcecode.ErrOutOfRange, offset)
}

func describeItem(item ast.Ranged) string {
	switch v := item.(type) {
	case *ast.Token:
		return fmt.Sprintf("%s %q %s", v.Type, v.Value, rangeOf(v.Range))
	case *ast.Node:
		return fmt.Sprintf("%s %s", v.Type, rangeOf(v.Range))
	default:
		return rangeOf(item.Span())
	}
}
