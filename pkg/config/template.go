package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/clikemode/pkg/clike"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every language preset. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = generateFullTemplate()
	} else {
		content = generateMinimalTemplate()
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}
	return content, nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Columns per indentation level
indent_unit: 4

# Visual width of a tab character
tab_size: 4

# Indent with tabs instead of spaces when rewriting
# use_tabs: false

# Process C-family fenced code blocks inside Markdown files
# markdown: true

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "build/**"

# Extra file extensions mapped to languages
# extensions:
#   .inl: cpp
#   .pde: java
`)
	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# clikemode configuration - Full Template
# See: https://github.com/yaklabco/clikemode
#
# Every language preset is listed with its settings.
# Uncomment and modify settings as needed.

# Columns per indentation level
indent_unit: 4

# Visual width of a tab character
tab_size: 4

# Indent with tabs instead of spaces when rewriting
use_tabs: false

# Process C-family fenced code blocks inside Markdown files
markdown: true

# Number of parallel workers (0 = auto based on CPU cores)
jobs: 0

# Backup configuration for indent --write
backups:
  enabled: false
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "build/**"
  - ".git/**"

# Extra file extensions mapped to languages
extensions:
  .inl: cpp

# Per-language overrides
languages:
`)

	for _, preset := range clike.Presets() {
		fmt.Fprintf(&buf, "\n  # %s (%s)\n", preset.Title, preset.MIME)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(
			"Keywords: "+strings.Join(preset.Keywords.Words(), " "), commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", preset.Name)
		buf.WriteString("    # keywords: []\n")
		buf.WriteString("    # remove_keywords: []\n")
		fmt.Fprintf(&buf, "    indent_unit: %d\n", preset.IndentUnit)
		fmt.Fprintf(&buf, "    directives: %t\n", preset.Directives)
		fmt.Fprintf(&buf, "    multi_line_strings: %t\n", preset.MultiLineStrings)
		fmt.Fprintf(&buf, "    verbatim_strings: %t\n", preset.VerbatimStrings)
		fmt.Fprintf(&buf, "    annotations: %t\n", preset.Annotations)
		fmt.Fprintf(&buf, "    dollar_variables: %t\n", preset.DollarVariables)
		fmt.Fprintf(&buf, "    literal_atoms: %t\n", preset.LiteralAtoms)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON converts a YAML template to JSON, dropping comments.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# clikemode configuration
# See: https://github.com/yaklabco/clikemode`
}
