package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/clikemode/internal/logging"
	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/reporter"
)

// stdinArg selects standard input as the only document.
const stdinArg = "-"

type indentFlags struct {
	commonFlags
	stdinPath string
}

func newIndentCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent [paths...]",
		Short: "Check or fix indentation",
		Long:  indentLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == stdinArg {
				return runIndentStdin(cmd, cfg, flags)
			}
			return runIndent(cmd, args, cfg, flags)
		},
	}

	addCommonFlags(cmd, cfg, &flags.commonFlags, reporter.FormatDiff)
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit with status 1 when files need re-indentation")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().IntVar(&cfg.IndentUnit, "indent-unit", 0, "columns per indentation level (default from config)")
	cmd.Flags().BoolVar(&cfg.UseTabs, "use-tabs", false, "indent with tabs when rewriting")
	cmd.Flags().StringVar(&flags.stdinPath, "stdin-path", "", "file name used to detect the language of standard input")

	return cmd
}

const indentLongDescription = `Re-indent C-family source files the way an editor would while typing.

Every line is indented from the bracket context of the lines above it.
Lines that start inside a block comment or a multi-line string are kept as
they are. In Markdown files, fenced code blocks tagged with a C-family
language are re-indented and the rest of the document is left untouched.

By default the suggested changes are printed as a unified diff and no file
is modified. Pass "-" as the only path to read standard input and write the
re-indented text to standard output.

Examples:
  clikemode indent                        # Diff for the current directory
  clikemode indent --check src/           # Exit 1 when anything would change
  clikemode indent --write src/           # Rewrite files in place
  clikemode indent --format text docs/    # Changed line numbers only
  cat main.c | clikemode indent -         # Filter standard input`

func runIndent(cmd *cobra.Command, args []string, cfg *config.Config, flags *indentFlags) error {
	result, finalCfg, err := runAction(cmd, args, cfg, &flags.commonFlags, pipeline.ActionIndent, reporter.FormatDiff, nil)
	if err != nil {
		return err
	}

	if finalCfg.Write && result.Stats.FilesWritten > 0 {
		logging.Default().Debug("files rewritten",
			logging.FieldFilesChanged, result.Stats.FilesWritten,
			logging.FieldLinesChanged, result.Stats.LinesChanged,
		)
	}

	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitIOError:
		return errRunFailed
	case ExitChangesNeeded:
		return ErrChangesNeeded
	default:
		return nil
	}
}

func runIndentStdin(cmd *cobra.Command, cliCfg *config.Config, flags *indentFlags) error {
	if cliCfg.Write {
		return fmt.Errorf("%w: --write cannot be used with standard input", errInvalidUsage)
	}
	if err := applyCommonFlags(cmd, cliCfg, &flags.commonFlags); err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	path := flags.stdinPath
	if path == "" {
		path = "stdin"
	}
	result, err := pipeline.New(cfg).ProcessContent(commandContext(cmd), path, content,
		pipeline.Options{Action: pipeline.ActionIndent})
	if err != nil {
		if errors.Is(err, pipeline.ErrUnsupported) {
			return fmt.Errorf("%w: %w (use --language or --stdin-path)", errInvalidUsage, err)
		}
		return err
	}

	out := content
	if result.Changed() {
		out = result.Modified
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write standard output: %w", err)
	}

	if cfg.Check && result.Changed() {
		return ErrChangesNeeded
	}
	return nil
}
