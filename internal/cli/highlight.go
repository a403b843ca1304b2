package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/reporter"
)

func newHighlightCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &commonFlags{}
	var noLineNumbers bool

	cmd := &cobra.Command{
		Use:   "highlight [paths...]",
		Short: "Print highlighted source code",
		Long: `Print C-family source files with syntax highlighting.

Files are tokenized line by line. The text format prints a colored listing;
the json format prints every line with its token spans (byte offsets, token
kind, and style), suitable for feeding an editor or another tool.

Examples:
  clikemode highlight main.c                # Highlighted listing
  clikemode highlight src/ --format json    # Token spans as JSON
  clikemode highlight -l cpp widget.inl     # Force a language`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, _, err := runAction(cmd, args, cfg, flags, pipeline.ActionHighlight, reporter.FormatText,
				func(opts *reporter.Options) { opts.LineNumbers = !noLineNumbers })
			if err != nil {
				return err
			}
			if result.HasErrors() {
				return errRunFailed
			}
			return nil
		},
	}

	addCommonFlags(cmd, cfg, flags, reporter.FormatText)
	cmd.Flags().BoolVar(&noLineNumbers, "no-line-numbers", false, "omit the line number gutter")

	return cmd
}
