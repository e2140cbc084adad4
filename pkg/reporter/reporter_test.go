package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/pkg/config"
	"github.com/yaklabco/srcindex/pkg/reporter"
)

func sampleReport() *reporter.Report {
	return &reporter.Report{
		Command: "locate",
		Payload: map[string]any{"offset": 4, "line": 1, "column": 4},
		Sections: []reporter.Section{
			{
				Title: "Location",
				Fields: []reporter.Field{
					{Label: "Offset", Value: "4"},
					{Label: "Position", Value: "1:4", Role: reporter.RoleLocation},
				},
				Excerpt: &reporter.Excerpt{Line: "let x = 1;", Column: 4},
			},
			{
				Title: "Tokens",
				Table: &reporter.Table{
					Headers: []string{"TYPE", "VALUE"},
					Rows:    [][]string{{"Identifier", "x"}},
				},
			},
			{
				Title: "Comments",
				Empty: "none",
			},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		wantErr bool
	}{
		{name: "empty defaults to text", format: ""},
		{name: "text", format: config.FormatText},
		{name: "json", format: config.FormatJSON},
		{name: "unknown format", format: "sarif", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: testCase.format})
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	require.NoError(t, rep.Report(context.Background(), sampleReport()))

	divider := strings.Repeat("-", 40)
	want := "Location\n" + divider + "\n" +
		"  Offset:   4\n" +
		"  Position: 1:4\n" +
		"    let x = 1;\n" +
		"        ^\n" +
		"\n" +
		"Tokens\n" + divider + "\n" +
		" TYPE        VALUE\n" +
		"====================\n" +
		" Identifier  x\n" +
		"--------------------\n" +
		"\n" +
		"Comments\n" + divider + "\n" +
		"  none\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Markdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	require.NoError(t, rep.Report(context.Background(), &reporter.Report{
		Command: "docs",
		Sections: []reporter.Section{{
			Title:    "greet",
			Markdown: "Greets a person.\n\nReturns *name* unchanged.",
			Empty:    "no description",
		}},
	}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "greet\n"+strings.Repeat("-", 40)+"\n"))
	assert.Contains(t, out, "Greets a person.")
	assert.Contains(t, out, "unchanged")
	assert.NotContains(t, out, "no description")
}

func TestTextReporter_NilReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	require.NoError(t, rep.Report(context.Background(), nil))
	assert.Empty(t, buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	require.NoError(t, rep.Report(context.Background(), sampleReport()))

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1", decoded.Version)
	assert.Equal(t, "locate", decoded.Command)
	assert.Equal(t, map[string]any{"offset": 4.0, "line": 1.0, "column": 4.0}, decoded.Result)
	assert.Contains(t, buf.String(), "\n  \"command\"", "indented by default")
}

func TestJSONReporter_KeepsSourceText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	require.NoError(t, rep.Report(context.Background(), &reporter.Report{Command: "docs", Payload: "a < b && <div/>"}))
	assert.Contains(t, buf.String(), `"a < b && <div/>"`)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	require.NoError(t, rep.Report(context.Background(), &reporter.Report{Command: "version", Payload: "dev"}))
	assert.Equal(t, `{"version":"1","command":"version","result":"dev"}`+"\n", buf.String())
}
