package cli

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/internal/configloader"
	"github.com/yaklabco/srcindex/internal/logging"
	"github.com/yaklabco/srcindex/pkg/config"
	"github.com/yaklabco/srcindex/pkg/reporter"
)

// configInitFlags holds the flags for the config init command.
type configInitFlags struct {
	force  bool
	full   bool
	format string
	output string
}

// configShowResult is the JSON payload of the config show command.
type configShowResult struct {
	Config     *config.Config `json:"config"`
	LoadedFrom []string       `json:"loaded_from"`
}

// configInitPaths maps each config init format to its default file name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configInitPaths = map[string]string{
	"yaml": configloader.ProjectConfigName,
	"toml": ".srcindex.toml",
	"json": ".srcindex.json",
}

func newConfigCommand(state *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect srcindex configuration",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(state))

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new srcindex configuration file",
		Long: `Create a new .srcindex.yml configuration file in the current directory.

Examples:
  srcindex config init                   Create minimal .srcindex.yml
  srcindex config init --full            Write every setting with its default
  srcindex config init --format json     Create .srcindex.json instead
  srcindex config init --format toml     Create .srcindex.toml instead
  srcindex config init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file, keeping a .srcindex.bak copy")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml, toml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .srcindex.yml, .srcindex.toml or .srcindex.json)")

	return cmd
}

func runConfigInit(ctx context.Context, flags *configInitFlags) error {
	logger := logging.NewInteractive()

	defaultPath, ok := configInitPaths[flags.format]
	if !ok {
		return fmt.Errorf("%w: invalid format %q: must be yaml, toml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultPath
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(ctx, absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'srcindex config show' to see the resolved configuration")

	return nil
}

func newConfigShowCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration and where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.emit(cmd, configShowReport(state.cfg, state.loaded.LoadedFrom))
		},
	}
}

func configShowReport(cfg *config.Config, loadedFrom []string) *reporter.Report {
	if loadedFrom == nil {
		loadedFrom = []string{}
	}

	fields := []reporter.Field{
		{Label: "Log level", Value: cfg.LogLevel},
		{Label: "Color", Value: string(cfg.Color)},
		{Label: "Format", Value: string(cfg.Format)},
		{Label: "JSX text spacing", Value: yesNo(cfg.JSXTextSpacing)},
	}

	keys := &reporter.Table{Headers: []string{"NODE TYPE", "CHILD KEYS"}}
	for _, nodeType := range slices.Sorted(maps.Keys(cfg.VisitorKeys)) {
		keys.Rows = append(keys.Rows, []string{nodeType, listOrNone(cfg.VisitorKeys[nodeType])})
	}

	sources := &reporter.Table{Headers: []string{"ORDER", "FILE"}}
	for i, path := range loadedFrom {
		sources.Rows = append(sources.Rows, []string{fmt.Sprintf("%d", i+1), path})
	}

	return &reporter.Report{
		Command: "config show",
		Payload: configShowResult{Config: cfg, LoadedFrom: loadedFrom},
		Sections: []reporter.Section{
			{Title: "Configuration", Fields: fields},
			{Title: "Visitor keys", Table: keys, Empty: "standard ESTree keys only"},
			{Title: "Loaded from", Table: sources, Empty: "defaults only"},
		},
	}
}
