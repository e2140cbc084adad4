package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/scope"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// offsetFlags holds the flags of commands that query one offset.
type offsetFlags struct {
	inputFlags

	offset int
}

// nodeSummary is the JSON shape of a node in command output.
type nodeSummary struct {
	Type  string             `json:"type"`
	Name  string             `json:"name,omitempty"`
	Range [2]int             `json:"range"`
	Loc   ast.SourceLocation `json:"loc"`
}

// nodeAtResult is the JSON payload of the node-at command.
type nodeAtResult struct {
	Offset    int           `json:"offset"`
	Node      *nodeSummary  `json:"node"`
	Ancestors []nodeSummary `json:"ancestors"`
	Scope     string        `json:"scope,omitempty"`
	Variables []string      `json:"variables"`
	Declares  []string      `json:"declares"`
}

func describeNode(node *ast.Node) nodeSummary {
	return nodeSummary{
		Type:  node.Type,
		Name:  node.Name,
		Range: [2]int{node.Range.Start, node.Range.End},
		Loc:   node.Loc,
	}
}

func newNodeAtCommand(state *app) *cobra.Command {
	flags := &offsetFlags{}

	cmd := &cobra.Command{
		Use:   "node-at",
		Short: "Show the deepest node at a byte offset",
		Long: `Find the deepest AST node whose range contains a byte offset, and print
its ancestors, the scope it belongs to and the variables it declares.

Examples:
  srcindex node-at -s app.js -a app.json --offset 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.query(cmd, &flags.inputFlags, func(src *indexed) (*reporter.Report, error) {
				return nodeAtReport(src.code, flags.offset)
			})
		},
	}

	addOffsetFlags(cmd, flags)

	return cmd
}

func addOffsetFlags(cmd *cobra.Command, flags *offsetFlags) {
	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "byte offset to query")
}

// checkOffset rejects offsets outside the source text.
func checkOffset(code *sourcecode.SourceCode, offset int) error {
	if offset < 0 || offset > len(code.Text()) {
		return fmt.Errorf("%w: offset %d is outside [0, %d]", sourcecode.ErrOutOfRange, offset, len(code.Text()))
	}
	return nil
}

func nodeAtReport(code *sourcecode.SourceCode, offset int) (*reporter.Report, error) {
	if err := checkOffset(code, offset); err != nil {
		return nil, err
	}

	result := nodeAtResult{
		Offset:    offset,
		Ancestors: []nodeSummary{},
		Variables: []string{},
		Declares:  []string{},
	}

	node := code.NodeAt(offset)
	if node == nil {
		return &reporter.Report{
			Command:  "node-at",
			Payload:  result,
			Sections: []reporter.Section{{Title: "Node", Empty: fmt.Sprintf("no node at offset %d", offset)}},
		}, nil
	}

	summary := describeNode(node)
	result.Node = &summary

	ancestors, err := code.AncestorsOf(node)
	if err != nil {
		return nil, err
	}
	for _, ancestor := range ancestors {
		result.Ancestors = append(result.Ancestors, describeNode(ancestor))
	}

	nodeScope, err := code.ScopeOf(node)
	if err != nil {
		return nil, err
	}
	if nodeScope != nil {
		result.Scope = string(nodeScope.Type())
		if concrete, ok := nodeScope.(*scope.Scope); ok {
			for _, variable := range concrete.Variables() {
				result.Variables = append(result.Variables, variable.Name())
			}
		}
	}

	declared, err := code.DeclaredVariables(node)
	if err != nil {
		return nil, err
	}
	for _, variable := range declared {
		result.Declares = append(result.Declares, variable.Name())
	}

	return &reporter.Report{
		Command:  "node-at",
		Payload:  result,
		Sections: nodeAtSections(code, node, result),
	}, nil
}

func nodeAtSections(code *sourcecode.SourceCode, node *ast.Node, result nodeAtResult) []reporter.Section {
	fields := []reporter.Field{
		{Label: "Type", Value: node.Type, Role: reporter.RoleNode},
	}
	if node.Name != "" {
		fields = append(fields, reporter.Field{Label: "Name", Value: node.Name})
	}
	fields = append(fields,
		reporter.Field{Label: "Range", Value: rangeOf(node.Range), Role: reporter.RoleLocation},
		reporter.Field{Label: "Start", Value: position(node.Loc.Start), Role: reporter.RoleLocation},
		reporter.Field{Label: "End", Value: position(node.Loc.End), Role: reporter.RoleLocation},
		reporter.Field{Label: "Scope", Value: result.Scope},
		reporter.Field{Label: "In scope", Value: listOrNone(result.Variables)},
		reporter.Field{Label: "Declares", Value: listOrNone(result.Declares)},
	)

	nodeSection := reporter.Section{Title: "Node", Fields: fields}
	if lines := code.Lines(); node.Loc.Start.Line >= 1 && node.Loc.Start.Line <= len(lines) {
		nodeSection.Excerpt = &reporter.Excerpt{
			Line:   lines[node.Loc.Start.Line-1],
			Column: node.Loc.Start.Column,
		}
	}

	table := &reporter.Table{Headers: []string{"DEPTH", "TYPE", "RANGE"}}
	for depth, ancestor := range result.Ancestors {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", depth),
			ancestor.Type,
			rangeOf(ast.Range{Start: ancestor.Range[0], End: ancestor.Range[1]}),
		})
	}

	return []reporter.Section{
		nodeSection,
		{Title: "Ancestors", Table: table, Empty: "none (root node)"},
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
