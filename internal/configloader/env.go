package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/clikemode/pkg/config"
)

// envVarPrefix is the prefix for all clikemode environment variables.
const envVarPrefix = "CLIKEMODE_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

var envVars = []envVar{
	{"INDENT_UNIT", "Columns per indentation level", intSetter(func(c *config.Config, v int) { c.IndentUnit = v })},
	{"TAB_SIZE", "Visual width of a tab character", intSetter(func(c *config.Config, v int) { c.TabSize = v })},
	{"USE_TABS", "Indent with tabs when rewriting: true or false", boolSetter(func(c *config.Config, v bool) { c.UseTabs = v })},
	{"MARKDOWN", "Process fenced code blocks in Markdown: true or false", boolSetter(func(c *config.Config, v bool) { c.Markdown = v })},
	{"JOBS", "Number of parallel workers (0 = auto)", intSetter(func(c *config.Config, v int) { c.Jobs = v })},
	{"LANGUAGE", "Force a language: c, cpp, java, or csharp", func(c *config.Config, v string) error {
		c.Language = v
		return nil
	}},
	{"FORMAT", "Output format: text, json, diff, or summary", func(c *config.Config, v string) error {
		c.Format = config.OutputFormat(v)
		return nil
	}},
	{"BACKUPS_ENABLED", "Enable backups when writing: true or false", boolSetter(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(c *config.Config, v string) error {
		c.Backups.Mode = v
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(c *config.Config, v string) error {
		c.Ignore = parseSliceValue(v)
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolSetter(func(c *config.Config, v bool) { c.NoBackups = v })},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CLIKEMODE_ (e.g., CLIKEMODE_TAB_SIZE).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, variable := range envVars {
		name := envVarPrefix + variable.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := variable.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

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

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envVars))
	for _, variable := range envVars {
		out = append(out, EnvVar{Name: envVarPrefix + variable.suffix, Description: variable.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
