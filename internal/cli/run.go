package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/clikemode/internal/logging"
	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/reporter"
	"github.com/yaklabco/clikemode/pkg/runner"
)

// commonFlags are shared by highlight and indent.
type commonFlags struct {
	format   string
	language string
	ignore   []string
	verbose  bool
	compact  bool
	noSum    bool
}

func addCommonFlags(cmd *cobra.Command, cfg *config.Config, flags *commonFlags, defaultFormat reporter.Format) {
	cmd.Flags().StringVar(&flags.format, "format", "",
		fmt.Sprintf("output format: text, json, diff, summary (default %q)", defaultFormat))
	cmd.Flags().StringVarP(&flags.language, "language", "l", "",
		"force a language: c, cpp, java, csharp (or an alias)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.TabSize, "tab-size", 0, "visual width of a tab (default from config)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged and skipped files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.noSum, "no-summary", false, "omit the summary line")
}

// applyCommonFlags copies explicitly set string flags into the CLI config.
func applyCommonFlags(cmd *cobra.Command, cfg *config.Config, flags *commonFlags) error {
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", errInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(flags.format)
	}
	cfg.Language = flags.language
	cfg.Ignore = flags.ignore
	return nil
}

// runAction loads configuration, processes paths, and reports the result.
func runAction(
	cmd *cobra.Command,
	args []string,
	cliCfg *config.Config,
	flags *commonFlags,
	action pipeline.Action,
	defaultFormat reporter.Format,
	customize func(*reporter.Options),
) (*runner.Result, *config.Config, error) {
	logger := logging.Default()
	ctx := commandContext(cmd)

	if err := applyCommonFlags(cmd, cliCfg, flags); err != nil {
		return nil, nil, err
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return nil, nil, err
	}

	runOpts := runner.OptionsFromConfig(cfg, args, action)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldCommand, action.String(),
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
	)

	start := time.Now()
	result, err := runner.New(pipeline.New(cfg)).Run(ctx, runOpts)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("%s run failed", action), err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldLinesChanged, result.Stats.LinesChanged,
		logging.FieldTokens, result.Stats.Tokens,
		"duration", time.Since(start),
	)

	repOpts := reporter.OptionsFromConfig(cfg, action, defaultFormat)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.Color = colorMode(cmd)
	repOpts.WorkingDir = workDir
	repOpts.Verbose = flags.verbose
	repOpts.Compact = flags.compact
	repOpts.ShowSummary = !flags.noSum
	if customize != nil {
		customize(&repOpts)
	}

	rep, err := reporter.New(repOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create reporter: %w", errInvalidUsage, err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return nil, nil, fmt.Errorf("report results: %w", err)
	}

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Warn("file failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}

	return result, cfg, nil
}
