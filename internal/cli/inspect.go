package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/reporter"
)

// inspectResult is the JSON payload of the inspect command.
type inspectResult struct {
	Source   string `json:"source"`
	SHA256   string `json:"sha256"`
	Language string `json:"language"`
	Lines    int    `json:"lines"`
	Tokens   int    `json:"tokens"`
	Comments int    `json:"comments"`
	BOM      bool   `json:"bom"`
	Shebang  string `json:"shebang,omitempty"`
	Scopes   int    `json:"scopes"`
}

func newInspectCommand(state *app) *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize an indexed source file",
		Long: `Index a source file and print what the index holds: line, token and
comment counts, whether a byte order mark or shebang was found, and how
many scopes the declaration analysis produced.

Examples:
  srcindex inspect -s app.js -a app.json
  srcindex inspect -s app.js -a app.json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.query(cmd, flags, func(src *indexed) (*reporter.Report, error) {
				return inspectReport(src), nil
			})
		},
	}

	addInputFlags(cmd, flags)

	return cmd
}

func inspectReport(src *indexed) *reporter.Report {
	code := src.code

	result := inspectResult{
		Source:   src.path,
		SHA256:   src.digest,
		Language: src.language,
		Lines:    code.LineCount(),
		Tokens:   len(code.Tokens()),
		Comments: len(code.AllComments()),
		BOM:      code.HasBOM(),
		Scopes:   len(src.scopes.Scopes()),
	}
	if shebang := code.Shebang(); shebang != nil {
		result.Shebang = shebang.Value
	}

	shebang := reporter.Field{Label: "Shebang", Value: "none", Role: reporter.RoleDim}
	if result.Shebang != "" {
		shebang = reporter.Field{Label: "Shebang", Value: "#!" + result.Shebang, Role: reporter.RoleComment}
	}

	return &reporter.Report{
		Command: "inspect",
		Payload: result,
		Sections: []reporter.Section{{
			Title: src.path,
			Fields: []reporter.Field{
				{Label: "SHA-256", Value: result.SHA256, Role: reporter.RoleDim},
				{Label: "Language", Value: result.Language},
				{Label: "Lines", Value: strconv.Itoa(result.Lines)},
				{Label: "Tokens", Value: strconv.Itoa(result.Tokens)},
				{Label: "Comments", Value: strconv.Itoa(result.Comments)},
				{Label: "Scopes", Value: strconv.Itoa(result.Scopes)},
				{Label: "BOM", Value: yesNo(result.BOM)},
				shebang,
			},
		}},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
