// Package config defines core configuration types for srcindex.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

import (
	"maps"
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// Log levels accepted by LogLevel.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config is the root configuration structure for srcindex.
type Config struct {
	// LogLevel is the minimum level logged ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level"`

	// Color controls styled output ("auto", "always", "never").
	Color ColorMode `json:"color" toml:"color" yaml:"color"`

	// Format specifies the output format ("text" or "json").
	Format OutputFormat `json:"format" toml:"format" yaml:"format"`

	// VisitorKeys adds or overrides the child fields walked per node type,
	// for parsers that emit non-standard nodes.
	VisitorKeys map[string][]string `json:"visitor_keys,omitempty" toml:"visitor_keys,omitempty" yaml:"visitor_keys,omitempty"`

	// JSXTextSpacing makes spacing checks treat whitespace inside JSX text
	// as space between tokens.
	JSXTextSpacing bool `json:"jsx_text_spacing" toml:"jsx_text_spacing" yaml:"jsx_text_spacing"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:    LogLevelWarn,
		Color:       ColorAuto,
		Format:      FormatText,
		VisitorKeys: make(map[string][]string),
	}
}

// Keys returns the configured visitor keys in the form the indexer takes.
func (c *Config) Keys() ast.VisitorKeys {
	if c == nil || len(c.VisitorKeys) == 0 {
		return nil
	}

	keys := make(ast.VisitorKeys, len(c.VisitorKeys))
	for nodeType, fields := range c.VisitorKeys {
		keys[nodeType] = slices.Clone(fields)
	}
	return keys
}

// deepCopy copies c, including each visitor key slice.
func (c *Config) deepCopy() *Config {
	clone := *c
	if c.VisitorKeys != nil {
		clone.VisitorKeys = make(map[string][]string, len(c.VisitorKeys))
		for nodeType, fields := range c.VisitorKeys {
			clone.VisitorKeys[nodeType] = slices.Clone(fields)
		}
	}
	return &clone
}

// LogLevels returns the accepted log levels.
func LogLevels() []string {
	return []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
}

// sortedKeys returns the node types of VisitorKeys in lexical order.
func (c *Config) sortedKeys() []string {
	return slices.Sorted(maps.Keys(c.VisitorKeys))
}
