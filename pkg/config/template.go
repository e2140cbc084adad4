package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its current value. If false, generates
	// a minimal commented template.
	Full bool

	// Format is the output format: "yaml", "toml" or "json".
	Format string

	// Config supplies the values for a full template. Nil means defaults.
	Config *Config
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig()
	}

	switch opts.Format {
	case "json":
		return templateToJSON(cfg)
	case "toml":
		return cfg.ToTOMLWithHeader(DefaultTemplateHeader())
	}
	if opts.Full {
		return generateFullTemplate(cfg)
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Log level: debug, info, warn, or error
# log_level: warn

# Styled output: auto, always, or never
# color: auto

# Output format: text or json
# format: text

# Treat whitespace inside JSX text as space between tokens
# jsx_text_spacing: false

# Child fields to walk for node types the defaults do not know
# visitor_keys:
#   TSAsExpression:
#     - expression
#     - typeAnnotation
`)
}

// generateFullTemplate writes every setting of cfg with a comment above it.
func generateFullTemplate(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + "\n")
	fmt.Fprintf(&buf, "\n# Log level: %s\n", strings.Join(LogLevels(), ", "))
	fmt.Fprintf(&buf, "log_level: %s\n", cfg.LogLevel)
	buf.WriteString("\n# Styled output: auto, always, or never\n")
	fmt.Fprintf(&buf, "color: %s\n", cfg.Color)
	buf.WriteString("\n# Output format: text or json\n")
	fmt.Fprintf(&buf, "format: %s\n", cfg.Format)
	buf.WriteString("\n# Treat whitespace inside JSX text as space between tokens\n")
	fmt.Fprintf(&buf, "jsx_text_spacing: %t\n", cfg.JSXTextSpacing)
	buf.WriteString("\n# Child fields to walk for node types the defaults do not know\n")

	if len(cfg.VisitorKeys) == 0 {
		buf.WriteString("visitor_keys: {}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("visitor_keys:\n")
	for _, nodeType := range cfg.sortedKeys() {
		fmt.Fprintf(&buf, "  %s:\n", nodeType)
		for _, field := range cfg.VisitorKeys[nodeType] {
			fmt.Fprintf(&buf, "    - %s\n", field)
		}
	}

	return buf.Bytes(), nil
}

// templateToJSON renders cfg as indented JSON.
func templateToJSON(cfg *Config) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# srcindex configuration
# See: https://github.com/yaklabco/srcindex`
}
