// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/srcindex/internal/logging"
	"github.com/yaklabco/srcindex/pkg/config"
	"github.com/yaklabco/srcindex/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// ErrParse is returned when a configuration file cannot be decoded.
var ErrParse = errors.New("malformed config file")

// ProjectConfigName is the file written by `srcindex config init`.
const ProjectConfigName = ".srcindex.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SRCINDEX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.srcindex.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/srcindex/config.yaml)
//  6. System config (/etc/srcindex/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{name: "system", path: paths.System, ignored: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignored: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, ignored: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	// Load and merge in order (lowest to highest precedence)
	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}

		layerCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(normalizeAliases(layerCfg), layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("Loaded config", logging.FieldConfig, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(normalizeAliases(cfg))
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration file. Files ending in .toml are
// parsed as TOML; everything else as YAML, which also accepts JSON.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	decode := config.FromYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = config.FromTOML
	}

	cfg, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	return cfg, nil
}

// WriteConfig writes a configuration file atomically, refusing to replace
// an existing one unless force is set. A replaced file is kept as a sidecar
// backup.
func WriteConfig(ctx context.Context, path string, content []byte, force bool) error {
	if fsutil.Exists(path) {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			return err
		}
		logging.FromContext(ctx).Debug("Backed up config", logging.FieldPath, fsutil.BackupPath(path))
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
