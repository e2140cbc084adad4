package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/srcindex/internal/ui/pretty"
)

// helpTemplate lays out command help. Flag blocks are rendered by
// flagUsages rather than pflag's own formatter so that names and types can
// be styled separately.
const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailing . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

// HelpFormatter renders styled help and usage text for the command tree.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter. Color follows colorMode as
// resolved against writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":      h.styles.Title.Render,
		"command":      h.styles.NodeType.Render,
		"subcommand":   h.styles.Token.Render,
		"flagUsages":   h.flagUsages,
		"pad":          pad,
		"trimTrailing": trimTrailing,
	}).Parse(helpTemplate))

	render := func(command *cobra.Command) error {
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages lists the visible flags of set, one per line, with the
// descriptions aligned in a column.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	type flagLine struct {
		names    string
		typeName string
		usage    string
	}

	var lines []flagLine
	width := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}

		typeName, usage := pflag.UnquoteUsage(flag)
		if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		line := flagLine{names: names, typeName: typeName, usage: usage}
		width = max(width, len(line.names)+len(line.typeName)+1)
		lines = append(lines, line)
	})

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}

		plainWidth := len(line.names) + len(line.typeName) + 1
		builder.WriteString("  " + h.styles.Location.Render(line.names))
		if line.typeName != "" {
			builder.WriteString(" " + h.styles.Dim.Render(line.typeName))
		} else {
			builder.WriteString(" ")
		}
		builder.WriteString(strings.Repeat(" ", width-plainWidth+2) + line.usage)
	}

	return builder.String()
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
