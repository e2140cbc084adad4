package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/srcindex/pkg/config"
)

// bufWriterSize is the buffer size of reporter output (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior. Zero fields take the defaults
// noted on each.
type Options struct {
	// Writer receives the output. Default: os.Stdout.
	Writer io.Writer

	// Format selects the reporter. Default: text.
	Format config.OutputFormat

	// Color is "auto", "always" or "never". Default: auto.
	Color string

	// Compact prints JSON on one line.
	Compact bool

	// Width overrides the detected terminal width.
	Width int
}

func (o Options) withDefaults() Options {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Format == "" {
		o.Format = config.FormatText
	}
	if o.Color == "" {
		o.Color = string(config.ColorAuto)
	}
	return o
}
