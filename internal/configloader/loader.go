// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/clikemode/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

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
//  2. Environment variables (CLIKEMODE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.clikemode.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/clikemode/config.yaml)
//  6. System config (/etc/clikemode/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}
		cfg, err = applyConfigFile(cfg, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// applyConfigFile layers the settings present in path onto base. Keys absent
// from the file keep their current values; present keys win even when they
// hold a zero value.
func applyConfigFile(base *config.Config, path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	fileCfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	var present map[string]any
	if err := yaml.Unmarshal(content, &present); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	result := base.Clone()
	if _, ok := present["indent_unit"]; ok {
		result.IndentUnit = fileCfg.IndentUnit
	}
	if _, ok := present["tab_size"]; ok {
		result.TabSize = fileCfg.TabSize
	}
	if _, ok := present["use_tabs"]; ok {
		result.UseTabs = fileCfg.UseTabs
	}
	if _, ok := present["markdown"]; ok {
		result.Markdown = fileCfg.Markdown
	}
	if _, ok := present["jobs"]; ok {
		result.Jobs = fileCfg.Jobs
	}
	if _, ok := present["ignore"]; ok {
		result.Ignore = fileCfg.Ignore
	}
	if backups, ok := present["backups"].(map[string]any); ok {
		if _, ok := backups["enabled"]; ok {
			result.Backups.Enabled = fileCfg.Backups.Enabled
		}
		if _, ok := backups["mode"]; ok {
			result.Backups.Mode = fileCfg.Backups.Mode
		}
	}

	// Maps merge per key across files.
	return merge(result, &config.Config{
		Extensions: fileCfg.Extensions,
		Languages:  fileCfg.Languages,
	}), nil
}

// WriteConfig writes a configuration to a YAML file with the default header.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fullContent := config.DefaultTemplateHeader() + "\n\n" + string(content)
	if err := os.WriteFile(path, []byte(fullContent), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
