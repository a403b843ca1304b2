// Package config defines the configuration types for clikemode.
// These types are plain data; discovery and merging live in the loader.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/clikemode/pkg/clike"
)

// ErrUnknownLanguage is returned when a language name matches no preset.
var ErrUnknownLanguage = errors.New("unknown language")

// OutputFormat specifies how results are rendered.
type OutputFormat string

// Output formats.
const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Backup modes accepted in configuration files.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// LanguageConfig overrides a preset. Nil pointers keep the preset's value.
type LanguageConfig struct {
	Keywords         []string `yaml:"keywords,omitempty"`
	RemoveKeywords   []string `yaml:"remove_keywords,omitempty"`
	IndentUnit       *int     `yaml:"indent_unit,omitempty"`
	Directives       *bool    `yaml:"directives,omitempty"`
	MultiLineStrings *bool    `yaml:"multi_line_strings,omitempty"`
	VerbatimStrings  *bool    `yaml:"verbatim_strings,omitempty"`
	Annotations      *bool    `yaml:"annotations,omitempty"`
	DollarVariables  *bool    `yaml:"dollar_variables,omitempty"`
	LiteralAtoms     *bool    `yaml:"literal_atoms,omitempty"`
}

// BackupsConfig controls backups taken before files are rewritten.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"`
}

// Config is the root configuration structure.
type Config struct {
	// IndentUnit is the number of columns per indentation level.
	IndentUnit int `yaml:"indent_unit"`

	// TabSize is the visual width of a tab character.
	TabSize int `yaml:"tab_size"`

	// UseTabs writes indentation with tabs when re-indenting.
	UseTabs bool `yaml:"use_tabs"`

	// Markdown enables processing of C-family fenced code blocks in Markdown files.
	Markdown bool `yaml:"markdown"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions maps extra file extensions (".inl") to language names.
	Extensions map[string]string `yaml:"extensions,omitempty"`

	// Languages holds per-language overrides keyed by preset name.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// Backups configures backups when writing files.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Language forces a language instead of detecting it.
	Language string `yaml:"-"`

	// Format selects the output format. Empty means the command's default.
	Format OutputFormat `yaml:"-"`

	// Write applies re-indentation to files.
	Write bool `yaml:"-"`

	// Check makes the run fail when any file would change.
	Check bool `yaml:"-"`

	// NoBackups disables backups for this run.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		IndentUnit: clike.DefaultIndentUnit,
		TabSize:    4,
		Markdown:   true,
		Jobs:       0,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
	}
}

// Language returns the preset named name with the configured indentation
// and overrides applied.
func (c *Config) Language(name string) (clike.Config, error) {
	preset, ok := clike.Lookup(name)
	if !ok {
		return clike.Config{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	if c.IndentUnit > 0 {
		preset = preset.WithIndentUnit(c.IndentUnit)
	}

	override, ok := c.Languages[preset.Name]
	if !ok {
		return preset, nil
	}
	return override.apply(preset), nil
}

func (l LanguageConfig) apply(cfg clike.Config) clike.Config {
	if len(l.Keywords) > 0 {
		cfg = cfg.WithKeywords(l.Keywords...)
	}
	if len(l.RemoveKeywords) > 0 {
		cfg = cfg.WithoutKeywords(l.RemoveKeywords...)
	}
	if l.IndentUnit != nil {
		cfg = cfg.WithIndentUnit(*l.IndentUnit)
	}
	setBool(&cfg.Directives, l.Directives)
	setBool(&cfg.MultiLineStrings, l.MultiLineStrings)
	setBool(&cfg.VerbatimStrings, l.VerbatimStrings)
	setBool(&cfg.Annotations, l.Annotations)
	setBool(&cfg.DollarVariables, l.DollarVariables)
	setBool(&cfg.LiteralAtoms, l.LiteralAtoms)
	return cfg
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// LanguageForPath returns the language configured for path's extension.
func (c *Config) LanguageForPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	for key, lang := range c.Extensions {
		if normalizeExtension(key) == ext {
			return lang, true
		}
	}
	return "", false
}

// ExtraExtensions returns the configured extensions with a leading dot.
func (c *Config) ExtraExtensions() []string {
	out := make([]string, 0, len(c.Extensions))
	for key := range c.Extensions {
		out = append(out, normalizeExtension(key))
	}
	return out
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
