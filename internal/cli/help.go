package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/clikemode/internal/ui/pretty"
)

// minFlagGap is the number of spaces pflag puts between a flag and its
// description.
const minFlagGap = 2

// HelpFormatter renders Cobra help with the same palette as the reports.
type HelpFormatter struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		command: styles.Bold,
		heading: styles.SummaryTitle,
		name:    styles.Keyword,
		flag:    styles.Atom,
		dim:     styles.Dim,
	}
}

const usageTemplate = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}{{if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}{{if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}{{if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ long . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command": h.command.Render,
		"heading": h.heading.Render,
		"name":    h.name.Render,
		"dim":     h.dim.Render,
		"flags":   h.flagUsages,
		"long":    h.long,
		"rpad":    rpad,
	}
}

// long styles section headings ("Examples:", "Keys:") and trailing
// "# ..." remarks inside a long description.
func (h *HelpFormatter) long(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		switch {
		case isHeading(line):
			lines[i] = h.heading.Render(line)
		case strings.HasPrefix(line, "  "):
			if idx := strings.Index(line, "# "); idx > 0 {
				lines[i] = line[:idx] + h.dim.Render(line[idx:])
				continue
			}
			lines[i] = line
		default:
			lines[i] = line
		}
	}
	return strings.Join(lines, "\n")
}

func isHeading(line string) bool {
	return line != "" && !strings.HasPrefix(line, " ") &&
		strings.HasSuffix(line, ":") && !strings.Contains(line, " ")
}

// flagUsages colors flag names and dims their value types.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	gap := strings.Index(trimmed, strings.Repeat(" ", minFlagGap))
	if gap < 0 {
		return line
	}
	head, rest := trimmed[:gap], trimmed[gap:]

	fields := strings.Fields(head)
	for i, field := range fields {
		if !strings.HasPrefix(field, "-") {
			fields[i] = h.dim.Render(field)
			continue
		}
		clean := strings.TrimSuffix(field, ",")
		fields[i] = h.flag.Render(clean) + field[len(clean):]
	}
	return indent + strings.Join(fields, " ") + rest
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStderr(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
