package configloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages.c.indent_unit").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.IndentUnit < 0 {
		addError("indent_unit", cfg.IndentUnit, "indent_unit must be >= 0 (0 means the language default)")
	}
	if cfg.TabSize < 0 {
		addError("tab_size", cfg.TabSize, "tab_size must be >= 0")
	}
	if cfg.Jobs < 0 {
		addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		addError("format", cfg.Format, "invalid format %q; must be one of: text, json, diff, summary", cfg.Format)
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		addError("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Language != "" {
		if _, ok := clike.Canonical(cfg.Language); !ok {
			addError("language", cfg.Language, "unknown language %q; must be one of: %s",
				cfg.Language, strings.Join(clike.Names(), ", "))
		}
	}
	if cfg.Write && cfg.Check {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "check",
			Message: "--check is ignored when --write is set",
		})
	}

	validateExtensions(cfg, result)
	validateLanguages(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.Extensions))
	for key := range cfg.Extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, ext := range keys {
		lang := cfg.Extensions[ext]
		if _, ok := clike.Canonical(lang); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "extensions." + ext,
				Value:   lang,
				Message: fmt.Sprintf("unknown language %q", lang),
			})
		}
	}
}

func validateLanguages(cfg *config.Config, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Languages))
	for name := range cfg.Languages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lang := cfg.Languages[name]
		canonical, ok := clike.Canonical(name)
		switch {
		case !ok:
			result.Errors = append(result.Errors, ValidationError{
				Field:   "languages." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown language %q; must be one of: %s", name, strings.Join(clike.Names(), ", ")),
			})
			continue
		case canonical != name:
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "languages." + name,
				Message: fmt.Sprintf("use the canonical name %q; alias keys are ignored", canonical),
			})
		}

		if lang.IndentUnit != nil && *lang.IndentUnit < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "languages." + name + ".indent_unit",
				Value:   *lang.IndentUnit,
				Message: "indent_unit must be >= 0",
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
