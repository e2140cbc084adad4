package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/srcindex/pkg/config"
)

// envVarPrefix is the prefix for all srcindex environment variables.
const envVarPrefix = "SRCINDEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeKeys
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL": {
		field: "log_level", typ: envTypeString,
		description: "Log level: debug, info, warn, or error",
	},
	"COLOR": {
		field: "color", typ: envTypeString,
		description: "Styled output: auto, always, or never",
	},
	"FORMAT": {
		field: "format", typ: envTypeString,
		description: "Output format: text or json",
	},
	"JSX_TEXT_SPACING": {
		field: "jsx_text_spacing", typ: envTypeBool,
		description: "Treat whitespace inside JSX text as space: true or false",
	},
	"VISITOR_KEYS": {
		field: "visitor_keys", typ: envTypeKeys,
		description: "Extra visitor keys, e.g. TSAsExpression=expression,typeAnnotation;Decorator=expression",
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SRCINDEX_ (e.g., SRCINDEX_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeKeys:
		keys, err := parseKeysValue(value)
		if err != nil {
			return fmt.Errorf("invalid visitor keys for %s: %w", envVar, err)
		}
		if cfg.VisitorKeys == nil {
			cfg.VisitorKeys = make(map[string][]string, len(keys))
		}
		for nodeType, fields := range keys {
			cfg.VisitorKeys[nodeType] = fields
		}
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseKeysValue parses "Type=a,b;Other=c" into a visitor key map.
// A type with no fields ("Type=") is a leaf.
func parseKeysValue(value string) (map[string][]string, error) {
	keys := make(map[string][]string)
	for entry := range strings.SplitSeq(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		nodeType, fields, found := strings.Cut(entry, "=")
		nodeType = strings.TrimSpace(nodeType)
		if !found || nodeType == "" {
			return nil, fmt.Errorf("entry %q is not of the form Type=field,field", entry)
		}

		keys[nodeType] = parseSliceValue(fields)
	}
	return keys, nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "jsx_text_spacing":
		cfg.JSXTextSpacing = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
