package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/internal/cli"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// The fixture is a small script with a shebang, a documented function
// declaration, a line comment inside it and an undocumented arrow function.
const (
	fixtureSource = "testdata/greet.js"
	fixtureAST    = "testdata/greet.json"
)

// Byte offsets into the fixture.
const (
	offsetFunction   = 90  // function greet(name) {
	offsetGreet      = 99  // greet
	offsetParenOpen  = 104 // (
	offsetReturn     = 125 // return name;
	offsetReturnName = 132 // name;
)

// execute runs the root command with an isolated config file and returns
// what it wrote to stdout.
func execute(t *testing.T, configContent string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".srcindex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configContent), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

// query runs a query command against the fixture with JSON output and
// decodes the result.
func query(t *testing.T, args ...string) map[string]any {
	t.Helper()

	full := append([]string{args[0], "-s", fixtureSource, "-a", fixtureAST, "--format", "json"}, args[1:]...)
	out, err := execute(t, "log_level: error\n", full...)
	require.NoError(t, err)

	var envelope struct {
		Command string         `json:"command"`
		Result  map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, args[0], envelope.Command)

	return envelope.Result
}

func TestIntegration_Inspect(t *testing.T) {
	t.Parallel()

	result := query(t, "inspect")

	assert.Equal(t, "javascript", result["language"])
	assert.Len(t, result["sha256"], 64)
	assert.InDelta(t, 12, result["lines"], 0)
	assert.InDelta(t, 19, result["tokens"], 0)
	assert.InDelta(t, 3, result["comments"], 0)
	assert.InDelta(t, 3, result["scopes"], 0)
	assert.Equal(t, false, result["bom"])
	assert.Equal(t, "/usr/bin/env node", result["shebang"])
}

func TestIntegration_InspectText(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "inspect", "-s", fixtureSource, "-a", fixtureAST)
	require.NoError(t, err)

	assert.Contains(t, out, fixtureSource)
	assert.Contains(t, out, "Language: javascript")
	assert.Contains(t, out, "Shebang:  #!/usr/bin/env node")
}

func TestIntegration_Locate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantOffset float64
		wantLine   float64
		wantColumn float64
	}{
		{name: "offset to position", args: []string{"--offset", "132"}, wantOffset: 132, wantLine: 9, wantColumn: 9},
		{name: "position to offset", args: []string{"--line", "7", "--column", "9"}, wantOffset: 99, wantLine: 7, wantColumn: 9},
		{name: "start of text", args: []string{"--offset", "0"}, wantOffset: 0, wantLine: 1, wantColumn: 0},
		{name: "end of text", args: []string{"--offset", "163"}, wantOffset: 163, wantLine: 12, wantColumn: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := query(t, append([]string{"locate"}, testCase.args...)...)
			assert.InDelta(t, testCase.wantOffset, result["offset"], 0)
			assert.InDelta(t, testCase.wantLine, result["line"], 0)
			assert.InDelta(t, testCase.wantColumn, result["column"], 0)
		})
	}
}

func TestIntegration_LocateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "offset past end", args: []string{"--offset", "164"}, wantCode: cli.ExitFailure},
		{name: "line past end", args: []string{"--line", "13"}, wantCode: cli.ExitFailure},
		{name: "no query", args: nil, wantCode: cli.ExitInvalidUsage},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"locate", "-s", fixtureSource, "-a", fixtureAST}, testCase.args...)
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, testCase.wantCode, cli.ExitCodeFromError(err))
		})
	}
}

func TestIntegration_LocateText(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "locate", "-s", fixtureSource, "-a", fixtureAST, "--offset", "132")
	require.NoError(t, err)

	assert.Contains(t, out, "Position: 9:9")
	assert.Contains(t, out, "    "+"  return name;\n"+"    "+"         ^\n")
}

func TestIntegration_NodeAt(t *testing.T) {
	t.Parallel()

	t.Run("identifier in function body", func(t *testing.T) {
		t.Parallel()

		result := query(t, "node-at", "--offset", "132")

		node, ok := result["node"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Identifier", node["type"])
		assert.Equal(t, "name", node["name"])

		var ancestors []string
		for _, item := range result["ancestors"].([]any) {
			ancestors = append(ancestors, item.(map[string]any)["type"].(string))
		}
		assert.Equal(t, []string{"Program", "FunctionDeclaration", "BlockStatement", "ReturnStatement"}, ancestors)

		assert.Equal(t, "function", result["scope"])
		assert.Equal(t, []any{"name"}, result["variables"])
		assert.Empty(t, result["declares"])
	})

	t.Run("function declaration", func(t *testing.T) {
		t.Parallel()

		result := query(t, "node-at", "--offset", "90")

		node, ok := result["node"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "FunctionDeclaration", node["type"])
		assert.Equal(t, []any{"greet", "name"}, result["declares"])
	})

	t.Run("program at top level", func(t *testing.T) {
		t.Parallel()

		result := query(t, "node-at", "--offset", "0")

		node, ok := result["node"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Program", node["type"])
		assert.Equal(t, "global", result["scope"])
		assert.Equal(t, []any{"greet", "noop"}, result["variables"])
	})
}

func TestIntegration_NodeAtOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "node-at", "-s", fixtureSource, "-a", fixtureAST, "--offset", "-1")
	require.ErrorIs(t, err, sourcecode.ErrOutOfRange)
}

func TestIntegration_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		offset       string
		wantNode     string
		wantLeading  []string
		wantTrailing []string
	}{
		{
			name:        "function has shebang and doc comment before it",
			offset:      "90",
			wantNode:    "FunctionDeclaration",
			wantLeading: []string{"Shebang", "Block"},
		},
		{
			name:        "statement has line comment before it",
			offset:      "125",
			wantNode:    "ReturnStatement",
			wantLeading: []string{"Line"},
		},
		{
			name:     "identifier has none",
			offset:   "99",
			wantNode: "Identifier",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := query(t, "comments", "--offset", testCase.offset)

			node := result["node"].(map[string]any)
			assert.Equal(t, testCase.wantNode, node["type"])
			assert.Equal(t, testCase.wantLeading, commentTypes(result["leading"]))
			assert.Equal(t, testCase.wantTrailing, commentTypes(result["trailing"]))
		})
	}
}

func commentTypes(value any) []string {
	var types []string
	for _, item := range value.([]any) {
		types = append(types, item.(map[string]any)["type"].(string))
	}
	return types
}

func TestIntegration_Docs(t *testing.T) {
	t.Parallel()

	full := []string{"docs", "-s", fixtureSource, "-a", fixtureAST, "--format", "json"}

	out, err := execute(t, "", full...)
	require.NoError(t, err)

	var envelope struct {
		Result []struct {
			Name string `json:"name"`
			Doc  struct {
				Summary string `json:"summary"`
				Tags    []struct {
					Name  string `json:"name"`
					Type  string `json:"type"`
					Ident string `json:"ident"`
					Text  string `json:"text"`
				} `json:"tags"`
			} `json:"doc"`
			Undocumented bool `json:"undocumented"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	require.Len(t, envelope.Result, 1)

	greet := envelope.Result[0]
	assert.Equal(t, "greet", greet.Name)
	assert.Equal(t, "Greets a person.", greet.Doc.Summary)
	require.Len(t, greet.Doc.Tags, 1)
	assert.Equal(t, "param", greet.Doc.Tags[0].Name)
	assert.Equal(t, "string", greet.Doc.Tags[0].Type)
	assert.Equal(t, "name", greet.Doc.Tags[0].Ident)
	assert.Equal(t, "who to greet", greet.Doc.Tags[0].Text)

	out, err = execute(t, "", append(full, "--all")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	require.Len(t, envelope.Result, 2)
	assert.Equal(t, "noop", envelope.Result[1].Name)
	assert.True(t, envelope.Result[1].Undocumented)
}

func TestIntegration_DocsText(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "docs", "-s", fixtureSource, "-a", fixtureAST)
	require.NoError(t, err)

	assert.Contains(t, out, "Doc comments")
	assert.Contains(t, out, "FunctionDeclaration")
	assert.Contains(t, out, "@param")
	assert.Contains(t, out, "Greets a person.")
	assert.NotContains(t, out, "noop")

	out, err = execute(t, "", "docs", "-s", fixtureSource, "-a", fixtureAST, "--long", "--all")
	require.NoError(t, err)

	assert.Contains(t, out, "greet\n"+strings.Repeat("-", 40))
	assert.Contains(t, out, "{string} name who to greet")
	assert.Contains(t, out, "noop\n"+strings.Repeat("-", 40))
}

func TestIntegration_Space(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from, to  int
		wantSpace bool
	}{
		{name: "keyword and name", from: offsetFunction, to: offsetGreet, wantSpace: true},
		{name: "name and paren", from: offsetGreet, to: offsetParenOpen, wantSpace: false},
		{name: "reversed order", from: offsetReturnName, to: offsetReturn, wantSpace: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := query(t, "space",
				"--from", itoa(testCase.from),
				"--to", itoa(testCase.to),
			)
			assert.Equal(t, testCase.wantSpace, result["space"])
			assert.Equal(t, false, result["jsxText"])
		})
	}
}

func TestIntegration_SpaceJSXTextFromConfig(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "jsx_text_spacing: true\n",
		"space", "-s", fixtureSource, "-a", fixtureAST, "--format", "json",
		"--from", itoa(offsetGreet), "--to", itoa(offsetParenOpen),
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"jsxText": true`)
	assert.Contains(t, out, `"space": false`)
}

func TestIntegration_MissingInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "inspect", "-s", fixtureSource)
	require.ErrorIs(t, err, cli.ErrMissingInput)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	_, err = execute(t, "", "docs", "--watch", "-a", fixtureAST)
	require.ErrorIs(t, err, cli.ErrMissingInput, "watch mode needs both inputs before it starts")
}

func TestIntegration_InvalidAST(t *testing.T) {
	t.Parallel()

	astFile := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(astFile, []byte(`{"type":"Program","body":[],"range":[0,0]}`), 0o644))

	_, err := execute(t, "", "inspect", "-s", fixtureSource, "-a", astFile)
	require.ErrorIs(t, err, sourcecode.ErrInvalidAST)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeFromError(err))
}

func TestIntegration_NonASCIISource(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "node-at", "-s", "testdata/accent.js", "-a", "testdata/accent.json",
		"--format", "json", "--offset", "6")
	require.NoError(t, err)

	var envelope struct {
		Result struct {
			Node struct {
				Type  string `json:"type"`
				Name  string `json:"name"`
				Range [2]int `json:"range"`
				Loc   struct {
					Start struct {
						Column int `json:"column"`
					} `json:"start"`
				} `json:"loc"`
			} `json:"node"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))

	node := envelope.Result.Node
	assert.Equal(t, "Identifier", node.Type)
	assert.Equal(t, "x", node.Name)
	assert.Equal(t, [2]int{6, 7}, node.Range, "ranges are bytes after the two-byte é")
	assert.Equal(t, 6, node.Loc.Start.Column)
}

func TestIntegration_SplitSurrogateRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "emoji.js")
	astFile := filepath.Join(dir, "emoji.json")
	require.NoError(t, os.WriteFile(source, []byte("'😀'"), 0o644))
	require.NoError(t, os.WriteFile(astFile, []byte(`{"type":"Program","body":[],"range":[0,4],`+
		`"loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":4}},"comments":[],`+
		`"tokens":[{"type":"String","value":"'😀'","range":[0,2],`+
		`"loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":2}}}]}`), 0o644))

	_, err := execute(t, "", "inspect", "-s", source, "-a", astFile)
	require.ErrorIs(t, err, sourcecode.ErrInvalidAST)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeFromError(err))
}

func TestIntegration_MissingSourceFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "inspect", "-s", "testdata/absent.js", "-a", fixtureAST)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_ConfigInit(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "custom.yml")

	_, err := execute(t, "", "config", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "log_level")

	_, err = execute(t, "", "config", "init", "--output", output)
	require.Error(t, err, "existing file is not replaced without --force")

	_, err = execute(t, "", "config", "init", "--output", output, "--force", "--full")
	require.NoError(t, err)

	backup, err := os.ReadFile(output + ".srcindex.bak")
	require.NoError(t, err)
	assert.Equal(t, string(content), string(backup))
}

func TestIntegration_ConfigInitInvalidFormat(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "custom.ini")

	_, err := execute(t, "", "config", "init", "--output", output, "--format", "ini")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_ConfigInitTOML(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "custom.toml")

	_, err := execute(t, "", "config", "init", "--output", output, "--format", "toml")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), `format = "text"`)

	out, err := execute(t, "", "--config", output, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "custom.toml")
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "visitor_keys:\n  JSXFragment: [children]\n", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "JSXFragment")
	assert.Contains(t, out, ".srcindex.yml")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "inspect", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:\n  srcindex inspect [flags]")
	assert.Contains(t, out, "-s, --source string")
	assert.Contains(t, out, "-w, --watch")
	assert.Contains(t, out, "Global Flags:")
	assert.Contains(t, out, "--format string")

	out, err = execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "node-at")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "srcindex")
	assert.Contains(t, out, "Version: test")

	out, err = execute(t, "", "version", "--format", "json", "--compact")
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1","command":"version","result":{"version":"test","commit":"test","date":"test"}}`+"\n", out)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
