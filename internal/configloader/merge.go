package configloader

import (
	"maps"

	"github.com/yaklabco/clikemode/pkg/config"
)

// merge overlays a CLI configuration onto base. Config files do not go
// through merge; they are decoded directly onto the accumulated value.
//   - Scalars: override wins when non-zero
//   - Booleans: override can only switch a setting on
//   - Maps: per-key merge, override wins
//   - Slices: override replaces base when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.IndentUnit != 0 {
		result.IndentUnit = override.IndentUnit
	}
	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.UseTabs {
		result.UseTabs = true
	}
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Ignore != nil {
		result.Ignore = append(result.Ignore[:0:0], override.Ignore...)
	}
	if len(override.Extensions) > 0 {
		if result.Extensions == nil {
			result.Extensions = make(map[string]string, len(override.Extensions))
		}
		maps.Copy(result.Extensions, override.Extensions)
	}
	for name, lang := range override.Languages {
		if result.Languages == nil {
			result.Languages = make(map[string]config.LanguageConfig)
		}
		result.Languages[name] = mergeLanguage(result.Languages[name], lang)
	}

	return result
}

// mergeLanguage merges individual language overrides.
func mergeLanguage(base, override config.LanguageConfig) config.LanguageConfig {
	result := base

	if override.Keywords != nil {
		result.Keywords = override.Keywords
	}
	if override.RemoveKeywords != nil {
		result.RemoveKeywords = override.RemoveKeywords
	}
	if override.IndentUnit != nil {
		result.IndentUnit = override.IndentUnit
	}
	if override.Directives != nil {
		result.Directives = override.Directives
	}
	if override.MultiLineStrings != nil {
		result.MultiLineStrings = override.MultiLineStrings
	}
	if override.VerbatimStrings != nil {
		result.VerbatimStrings = override.VerbatimStrings
	}
	if override.Annotations != nil {
		result.Annotations = override.Annotations
	}
	if override.DollarVariables != nil {
		result.DollarVariables = override.DollarVariables
	}
	if override.LiteralAtoms != nil {
		result.LiteralAtoms = override.LiteralAtoms
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
