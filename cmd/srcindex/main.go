// Command srcindex answers position, comment and spacing queries about a
// JavaScript file and its ESTree AST.
package main

import (
	"context"
	"os"

	"github.com/yaklabco/srcindex/internal/cli"
	"github.com/yaklabco/srcindex/internal/logging"
)

// Set through -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets must be package-level.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	code := cli.ExitCodeFromError(err)
	logging.Default().Error("srcindex failed", logging.FieldError, err, "exit", code)
	return code
}
