package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/pkg/reporter"
)

func newVersionCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of srcindex.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return state.emit(cmd, versionReport(state.info))
		},
	}
}

func versionReport(info BuildInfo) *reporter.Report {
	return &reporter.Report{
		Command: "version",
		Payload: info,
		Sections: []reporter.Section{{
			Title: "srcindex",
			Fields: []reporter.Field{
				{Label: "Version", Value: info.Version},
				{Label: "Commit", Value: info.Commit, Role: reporter.RoleDim},
				{Label: "Built", Value: info.Date, Role: reporter.RoleDim},
			},
		}},
	}
}
