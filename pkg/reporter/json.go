package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// jsonVersion is the schema version of JSON output.
const jsonVersion = "1"

// JSONOutput is the envelope of JSON output. Version changes whenever a
// command's result shape changes incompatibly.
type JSONOutput struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Result  any    `json:"result"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{Version: jsonVersion}
	if report != nil {
		output.Command = report.Command
		output.Result = report.Payload
	}

	// Payloads quote source text, where "<" and "&&" are common.
	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
