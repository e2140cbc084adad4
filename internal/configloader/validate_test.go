package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        *config.Config
		wantFields []string
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{name: "bad log level", cfg: &config.Config{LogLevel: "loud"}, wantFields: []string{"log_level"}},
		{name: "bad color", cfg: &config.Config{Color: "rainbow"}, wantFields: []string{"color"}},
		{name: "bad format", cfg: &config.Config{Format: "xml"}, wantFields: []string{"format"}},
		{
			name:       "empty node type",
			cfg:        &config.Config{VisitorKeys: map[string][]string{" ": {"a"}}},
			wantFields: []string{"visitor_keys"},
		},
		{
			name:       "empty field name",
			cfg:        &config.Config{VisitorKeys: map[string][]string{"Custom": {"a", ""}}},
			wantFields: []string{"visitor_keys.Custom[1]"},
		},
		{
			name:       "several",
			cfg:        &config.Config{LogLevel: "loud", Format: "xml"},
			wantFields: []string{"log_level", "format"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(testCase.cfg)

			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			if len(testCase.wantFields) == 0 {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.AllMessages())
				return
			}
			assert.Equal(t, testCase.wantFields, fields)
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Color: "rainbow"}, "/tmp/.srcindex.yml")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, `/tmp/.srcindex.yml: color: invalid color mode "rainbow"; must be one of: auto, always, never`,
		result.Errors[0].Error())
	assert.Equal(t, []string{result.AllMessages()[0]}, []string{"error: " + result.Errors[0].Error()})
}

func TestValidate_StandardOverrideWarning(t *testing.T) {
	t.Parallel()

	result := Validate(&config.Config{VisitorKeys: map[string][]string{
		"Identifier": {},
		"Custom":     {"body"},
	}})

	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "visitor_keys.Identifier", result.Warnings[0].Field)
}

func TestNormalizeAliases(t *testing.T) {
	t.Parallel()

	cfg := normalizeAliases(&config.Config{LogLevel: " Trace ", Color: "YES", Format: "Text"})

	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, config.ColorAlways, cfg.Color)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Nil(t, normalizeAliases(nil))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Format: config.FormatJSON, VisitorKeys: map[string][]string{"A": {"x"}}},
		&config.Config{Color: config.ColorNever, VisitorKeys: map[string][]string{"A": {"y"}, "B": nil}},
	)

	assert.Equal(t, config.FormatJSON, merged.Format)
	assert.Equal(t, config.ColorNever, merged.Color)
	assert.Equal(t, config.LogLevelWarn, merged.LogLevel)
	assert.Equal(t, map[string][]string{"A": {"y"}, "B": nil}, merged.VisitorKeys)
	assert.Nil(t, MergeAll())
}

func TestParseKeysValue(t *testing.T) {
	t.Parallel()

	keys, err := parseKeysValue("A=x, y;B=;")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"A": {"x", "y"}, "B": {}}, keys)

	_, err = parseKeysValue("missing-equals")
	require.Error(t, err)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	assert.Equal(t, "SRCINDEX_COLOR", vars[0].Name)
	assert.Equal(t, "SRCINDEX_FORMAT", GetEnvVarName("format"))
	assert.Empty(t, GetEnvVarName("nope"))
}
