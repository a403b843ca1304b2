package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the persistent part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML. Unknown keys are rejected so
// typos surface as errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = maps.Clone(c.Extensions)
	if c.Languages != nil {
		clone.Languages = make(map[string]LanguageConfig, len(c.Languages))
		for name, lang := range c.Languages {
			clone.Languages[name] = lang.clone()
		}
	}
	return &clone
}

func (l LanguageConfig) clone() LanguageConfig {
	out := l
	out.Keywords = slices.Clone(l.Keywords)
	out.RemoveKeywords = slices.Clone(l.RemoveKeywords)
	out.IndentUnit = clonePtr(l.IndentUnit)
	out.Directives = clonePtr(l.Directives)
	out.MultiLineStrings = clonePtr(l.MultiLineStrings)
	out.VerbatimStrings = clonePtr(l.VerbatimStrings)
	out.Annotations = clonePtr(l.Annotations)
	out.DollarVariables = clonePtr(l.DollarVariables)
	out.LiteralAtoms = clonePtr(l.LiteralAtoms)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
