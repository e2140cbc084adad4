package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/jsdoc"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// documented is one function or class in the docs command output.
type documented struct {
	Node         nodeSummary `json:"node"`
	Name         string      `json:"name,omitempty"`
	Comment      *[2]int     `json:"comment,omitempty"`
	Doc          jsdoc.Doc   `json:"doc"`
	Undocumented bool        `json:"undocumented,omitempty"`
}

// docsFlags holds the flags for the docs command.
type docsFlags struct {
	inputFlags

	all  bool
	long bool
}

func newDocsCommand(state *app) *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List the doc comments of functions and classes",
		Long: `Find every function and class in the file, locate the /** ... */ comment
documenting each one, and print its summary and block tags.

Examples:
  srcindex docs -s app.js -a app.json
  srcindex docs -s app.js -a app.json --all   Include undocumented nodes
  srcindex docs -s app.js -a app.json --long  Render each full description`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.query(cmd, &flags.inputFlags, func(src *indexed) (*reporter.Report, error) {
				return docsReport(src.code, flags.all, flags.long), nil
			})
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().BoolVar(&flags.all, "all", false, "include functions and classes without a doc comment")
	cmd.Flags().BoolVar(&flags.long, "long", false, "print every description and tag below the table")

	return cmd
}

func docsReport(code *sourcecode.SourceCode, all, long bool) *reporter.Report {
	entries := collectDocs(code)

	payload := make([]documented, 0, len(entries))
	table := &reporter.Table{Headers: []string{"LINE", "NODE", "NAME", "TAGS", "SUMMARY"}}

	for _, entry := range entries {
		if entry.Undocumented && !all {
			continue
		}
		payload = append(payload, entry)

		summary := entry.Doc.Summary
		if entry.Undocumented {
			summary = "(undocumented)"
		}
		table.Rows = append(table.Rows, []string{
			position(entry.Node.Loc.Start),
			entry.Node.Type,
			entry.Name,
			tagNames(entry.Doc),
			oneLine(summary),
		})
	}

	sections := []reporter.Section{{Title: "Doc comments", Table: table, Empty: "no documented functions or classes"}}
	if long {
		for _, entry := range payload {
			sections = append(sections, docSection(entry))
		}
	}

	return &reporter.Report{
		Command:  "docs",
		Payload:  payload,
		Sections: sections,
	}
}

// docSection shows one entry in full: its location, each block tag and the
// rendered description.
func docSection(entry documented) reporter.Section {
	title := entry.Name
	if title == "" {
		title = entry.Node.Type
	}

	fields := []reporter.Field{
		{Label: "Node", Value: entry.Node.Type, Role: reporter.RoleNode},
		{Label: "Location", Value: position(entry.Node.Loc.Start), Role: reporter.RoleLocation},
	}
	for _, tag := range entry.Doc.Tags {
		fields = append(fields, reporter.Field{Label: "@" + tag.Name, Value: tagDetail(tag)})
	}

	return reporter.Section{
		Title:    title,
		Fields:   fields,
		Markdown: entry.Doc.Description,
	}
}

// tagDetail renders a tag back in its written form, minus the name.
func tagDetail(tag jsdoc.Tag) string {
	var parts []string
	if tag.Type != "" {
		parts = append(parts, "{"+tag.Type+"}")
	}
	if tag.Ident != "" {
		ident := tag.Ident
		if tag.Optional {
			ident = "[" + ident + "]"
		}
		parts = append(parts, ident)
	}
	if tag.Text != "" {
		parts = append(parts, oneLine(tag.Text))
	}
	return strings.Join(parts, " ")
}

// collectDocs pairs every function and class with its doc comment.
func collectDocs(code *sourcecode.SourceCode) []documented {
	nodes := ast.FindAll(code.Root(), code.VisitorKeys(), func(n *ast.Node) bool {
		return n.IsFunction() || n.Type == ast.TypeClassDeclaration || n.Type == ast.TypeClassExpression
	})

	entries := make([]documented, 0, len(nodes))
	for _, node := range nodes {
		entry := documented{Node: describeNode(node), Name: declaredName(node)}

		comment := code.DocCommentFor(node)
		if comment == nil {
			entry.Undocumented = true
		} else {
			entry.Comment = &[2]int{comment.Range.Start, comment.Range.End}
			entry.Doc = jsdoc.Parse(comment)
		}
		entries = append(entries, entry)
	}

	return entries
}

// declaredName returns the name a function or class is known by: its own
// identifier, or the variable, property or method it is assigned to.
func declaredName(node *ast.Node) string {
	if id := node.Child("id"); id != nil && id.Name != "" {
		return id.Name
	}

	parent := node.Parent
	if parent == nil {
		return ""
	}

	switch parent.Type {
	case "VariableDeclarator", "MethodDefinition", "Property", "PropertyDefinition":
		key := parent.Child("id")
		if key == nil {
			key = parent.Child("key")
		}
		if key != nil {
			return key.Name
		}
	case "AssignmentExpression":
		if left := parent.Child("left"); left != nil {
			if prop := left.Child("property"); prop != nil {
				return prop.Name
			}
			return left.Name
		}
	}

	return ""
}

func tagNames(doc jsdoc.Doc) string {
	names := make([]string, 0, len(doc.Tags))
	for _, tag := range doc.Tags {
		names = append(names, "@"+tag.Name)
	}
	return strings.Join(names, " ")
}

// oneLine collapses runs of whitespace, including line breaks, to one space.
func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
