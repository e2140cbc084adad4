package configloader

import (
	"slices"

	"github.com/yaklabco/srcindex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Visitor keys: merged per node type, override's field list replaces base's
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// false is the zero value, so a layer can only switch the option on.
	if override.JSXTextSpacing {
		result.JSXTextSpacing = true
	}

	result.VisitorKeys = mergeVisitorKeys(base.VisitorKeys, override.VisitorKeys)

	return &result
}

// mergeVisitorKeys merges two visitor key maps into a new map.
func mergeVisitorKeys(base, override map[string][]string) map[string][]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string][]string, len(base)+len(override))
	for nodeType, fields := range base {
		result[nodeType] = slices.Clone(fields)
	}
	for nodeType, fields := range override {
		result[nodeType] = slices.Clone(fields)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
