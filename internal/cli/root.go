// Package cli provides the Cobra command structure for srcindex.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/internal/configloader"
	"github.com/yaklabco/srcindex/internal/logging"
	"github.com/yaklabco/srcindex/pkg/config"
	"github.com/yaklabco/srcindex/pkg/reporter"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	format     string
	compact    bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	info  BuildInfo
	flags globalFlags

	// cfg and loaded are set by the root PersistentPreRunE.
	cfg    *config.Config
	loaded *configloader.LoadResult
}

// NewRootCommand creates the root srcindex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	state := &app{info: info}

	rootCmd := &cobra.Command{
		Use:   "srcindex",
		Short: "Query an indexed view of a JavaScript source file",
		Long: `srcindex indexes a JavaScript source file together with the ESTree AST
a parser produced for it, and answers the questions lint rules ask:
where an offset sits, which node covers it, which comments belong to a
node, which doc comment documents a function, and whether whitespace
separates two tokens.

The AST is read as JSON, as printed by espree, acorn or typescript-estree
with range, loc, tokens and comment output enabled.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&state.flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&state.flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&state.flags.color, "color", "",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&state.flags.format, "format", "",
		"output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&state.flags.compact, "compact", false, "print JSON without indentation")

	// Add subcommands.
	rootCmd.AddCommand(newInspectCommand(state))
	rootCmd.AddCommand(newLocateCommand(state))
	rootCmd.AddCommand(newNodeAtCommand(state))
	rootCmd.AddCommand(newCommentsCommand(state))
	rootCmd.AddCommand(newDocsCommand(state))
	rootCmd.AddCommand(newSpaceCommand(state))
	rootCmd.AddCommand(newConfigCommand(state))
	rootCmd.AddCommand(newVersionCommand(state))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(string(config.ColorAuto), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// setup resolves the configuration and attaches a logger to the command
// context.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg, err := a.cliConfig()
	if err != nil {
		return err
	}

	bootLevel := config.LogLevelWarn
	if a.flags.debug {
		bootLevel = config.LogLevelDebug
	}
	ctx = logging.WithLogger(ctx, logging.NewWithWriter(cmd.ErrOrStderr(), bootLevel))

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: a.flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), loaded.Config.LogLevel)
	for _, warning := range loaded.Warnings {
		logger.Warn("config", logging.FieldError, warning)
	}

	a.cfg = loaded.Config
	a.loaded = loaded
	cmd.SetContext(logging.WithLogger(ctx, logger))

	return nil
}

// cliConfig converts the persistent flags into the highest-precedence
// configuration layer.
func (a *app) cliConfig() (*config.Config, error) {
	cfg := &config.Config{}

	if a.flags.debug {
		cfg.LogLevel = config.LogLevelDebug
	}

	if a.flags.color != "" {
		mode, err := config.ParseColorMode(a.flags.color)
		if err != nil {
			return nil, err
		}
		cfg.Color = mode
	}

	if a.flags.format != "" {
		format, err := config.ParseFormat(a.flags.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}

	return cfg, nil
}

// emit writes a report in the configured format to the command's output.
func (a *app) emit(cmd *cobra.Command, report *reporter.Report) error {
	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  a.cfg.Format,
		Color:   string(a.cfg.Color),
		Compact: a.flags.compact,
	})
	if err != nil {
		return err
	}

	return rep.Report(cmd.Context(), report)
}
