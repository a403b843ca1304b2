package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/clikemode/internal/ui/pretty"
	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/config"
)

// langInfo describes one language as configured for the current project.
type langInfo struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	MIME       string   `json:"mime"`
	Aliases    []string `json:"aliases"`
	IndentUnit int      `json:"indent_unit"`
	Features   []string `json:"features"`
	Keywords   []string `json:"keywords"`
}

func newLangsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		Long: `List the built-in C-family languages with the settings in effect for
the current directory, after config files are applied.

Examples:
  clikemode langs                  # Table of languages
  clikemode langs --format json    # Full keyword lists as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			infos, err := describeLanguages(cfg)
			if err != nil {
				return err
			}

			switch format {
			case "table":
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
				width := pretty.TerminalWidth(cmd.OutOrStdout())
				return writeLangsTable(cmd.OutOrStdout(), infos, pretty.NewTableFormatter(styles, width))
			case "json":
				return writeLangsJSON(cmd.OutOrStdout(), infos)
			default:
				return fmt.Errorf("%w: invalid format %q: must be table or json", errInvalidUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")

	return cmd
}

func describeLanguages(cfg *config.Config) ([]langInfo, error) {
	infos := make([]langInfo, 0, len(clike.Names()))
	for _, name := range clike.Names() {
		lang, err := cfg.Language(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, langInfo{
			Name:       lang.Name,
			Title:      lang.Title,
			MIME:       lang.MIME,
			Aliases:    clike.AliasesOf(lang.Name),
			IndentUnit: lang.IndentUnit,
			Features:   features(lang),
			Keywords:   lang.Keywords.Words(),
		})
	}
	return infos, nil
}

func features(lang clike.Config) []string {
	flags := []struct {
		on   bool
		name string
	}{
		{lang.Directives, "directives"},
		{lang.MultiLineStrings, "multiline-strings"},
		{lang.VerbatimStrings, "verbatim-strings"},
		{lang.Annotations, "annotations"},
		{lang.DollarVariables, "dollar-variables"},
		{lang.LiteralAtoms, "literal-atoms"},
	}
	out := []string{}
	for _, f := range flags {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}

func writeLangsTable(w io.Writer, infos []langInfo, table *pretty.TableFormatter) error {
	header := []string{"NAME", "TITLE", "MIME", "INDENT", "KEYWORDS", "ALIASES", "FEATURES"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			info.Title,
			info.MIME,
			strconv.Itoa(info.IndentUnit),
			strconv.Itoa(len(info.Keywords)),
			strings.Join(info.Aliases, ", "),
			strings.Join(info.Features, ", "),
		})
	}
	_, err := io.WriteString(w, table.FormatTable(header, rows))
	return err
}

func writeLangsJSON(w io.Writer, infos []langInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		return fmt.Errorf("encode languages: %w", err)
	}
	return nil
}
