package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// commentSummary is the JSON shape of a comment in command output.
type commentSummary struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Range [2]int `json:"range"`
	Line  int    `json:"line"`
}

// commentsResult is the JSON payload of the comments command.
type commentsResult struct {
	Node     nodeSummary      `json:"node"`
	Leading  []commentSummary `json:"leading"`
	Trailing []commentSummary `json:"trailing"`
}

func newCommentsCommand(state *app) *cobra.Command {
	flags := &offsetFlags{}

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Show the comments attached to the node at a byte offset",
		Long: `Find the deepest node at a byte offset and print the comments attached
to it: leading comments directly before the node and trailing comments
directly after it. Comments inside an empty block, object, class body
or switch are reported as trailing comments of that node.

Examples:
  srcindex comments -s app.js -a app.json --offset 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.query(cmd, &flags.inputFlags, func(src *indexed) (*reporter.Report, error) {
				return commentsReport(src.code, flags.offset)
			})
		},
	}

	addOffsetFlags(cmd, flags)

	return cmd
}

func commentsReport(code *sourcecode.SourceCode, offset int) (*reporter.Report, error) {
	if err := checkOffset(code, offset); err != nil {
		return nil, err
	}

	node := code.NodeAt(offset)
	if node == nil {
		return nil, fmt.Errorf("%w: no node at offset %d", sourcecode.ErrOutOfRange, offset)
	}

	comments := code.CommentsFor(node)
	result := commentsResult{
		Node:     describeNode(node),
		Leading:  summarizeComments(comments.Leading),
		Trailing: summarizeComments(comments.Trailing),
	}

	return &reporter.Report{
		Command: "comments",
		Payload: result,
		Sections: []reporter.Section{
			{
				Title: "Node",
				Fields: []reporter.Field{
					{Label: "Type", Value: node.Type, Role: reporter.RoleNode},
					{Label: "Range", Value: rangeOf(node.Range), Role: reporter.RoleLocation},
				},
			},
			{Title: "Leading", Table: commentTable(comments.Leading), Empty: "none"},
			{Title: "Trailing", Table: commentTable(comments.Trailing), Empty: "none"},
		},
	}, nil
}

func summarizeComments(tokens []*ast.Token) []commentSummary {
	summaries := make([]commentSummary, 0, len(tokens))
	for _, tok := range tokens {
		summaries = append(summaries, commentSummary{
			Type:  string(tok.Type),
			Value: tok.Value,
			Range: [2]int{tok.Range.Start, tok.Range.End},
			Line:  tok.Loc.Start.Line,
		})
	}
	return summaries
}

func commentTable(tokens []*ast.Token) *reporter.Table {
	table := &reporter.Table{Headers: []string{"LINE", "TYPE", "RANGE", "TEXT"}}
	for _, tok := range tokens {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", tok.Loc.Start.Line),
			string(tok.Type),
			rangeOf(tok.Range),
			commentText(tok),
		})
	}
	return table
}

// commentText restores the delimiters of a comment and folds it onto one line.
func commentText(tok *ast.Token) string {
	var text string
	switch tok.Type {
	case ast.TokLine:
		text = "//" + tok.Value
	case ast.TokBlock:
		text = "/*" + tok.Value + "*/"
	case ast.TokShebang:
		text = "#!" + tok.Value
	default:
		text = tok.Value
	}
	return oneLine(text)
}
