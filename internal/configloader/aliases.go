package configloader

import (
	"strings"

	"github.com/yaklabco/srcindex/pkg/config"
)

// logLevelAliases maps accepted spellings to canonical log levels.
//
//nolint:gochecknoglobals // Read-only lookup table.
var logLevelAliases = map[string]string{
	"warning": config.LogLevelWarn,
	"err":     config.LogLevelError,
	"trace":   config.LogLevelDebug,
}

// colorAliases maps boolean-like spellings to color modes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var colorAliases = map[string]config.ColorMode{
	"true":  config.ColorAlways,
	"on":    config.ColorAlways,
	"yes":   config.ColorAlways,
	"false": config.ColorNever,
	"off":   config.ColorNever,
	"no":    config.ColorNever,
}

// normalizeAliases rewrites enum values to their canonical lower-case
// spelling in place and returns cfg.
func normalizeAliases(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}

	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if canonical, ok := logLevelAliases[level]; ok {
		level = canonical
	}
	cfg.LogLevel = level

	color := strings.ToLower(strings.TrimSpace(string(cfg.Color)))
	if canonical, ok := colorAliases[color]; ok {
		color = string(canonical)
	}
	cfg.Color = config.ColorMode(color)

	cfg.Format = config.OutputFormat(strings.ToLower(strings.TrimSpace(string(cfg.Format))))

	return cfg
}
