package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/clikemode/internal/logging"
	"github.com/yaklabco/clikemode/internal/ui/viewer"
	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/fsutil"
	"github.com/yaklabco/clikemode/pkg/langdetect"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/reindent"
)

func newViewCommand() *cobra.Command {
	cfg := &config.Config{}
	var language string

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a file in a terminal viewer",
		Long: `Open a C-family source file in a full-screen viewer.

The status line shows the current and the suggested indentation of the
cursor line. Edits stay in memory unless --write is given.

Keys:
  j, k, arrows      move the cursor
  space, b, PgDn    page down / up
  g, G              first / last line
  =                 re-indent the cursor line
  R                 re-indent the whole file
  o                 open an indented line below the cursor
  {, }              type a brace and re-indent the line
  q, Esc            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Language = language
			return runView(cmd, args[0], cfg)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "force a language: c, cpp, java, csharp (or an alias)")
	cmd.Flags().IntVar(&cfg.TabSize, "tab-size", 0, "visual width of a tab (default from config)")
	cmd.Flags().BoolVar(&cfg.UseTabs, "use-tabs", false, "indent with tabs when re-indenting")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "save changes when the viewer exits")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")

	return cmd
}

func runView(cmd *cobra.Command, path string, cliCfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("%w: view needs an interactive terminal", errInvalidUsage)
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	src, err := fsutil.Load(ctx, path)
	if err != nil {
		return err
	}

	pipe := pipeline.New(cfg)
	lang, err := pipe.Resolve(path, src.Content)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errInvalidUsage, path, err)
	}
	if lang == langdetect.Markdown {
		return fmt.Errorf("%w: %s: view does not support markdown", errInvalidUsage, path)
	}
	mode, err := pipe.Mode(lang)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	view := viewer.New(screen, mode, string(src.Content), viewer.Options{
		Path:     path,
		Language: mode.Config().Title,
		Indent: reindent.Options{
			TabSize: cfg.TabSize,
			UseTabs: cfg.UseTabs,
		},
	})
	runErr := view.Run(ctx)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, ctx.Err()) {
		return runErr
	}

	if !view.Modified() {
		return nil
	}
	if !cfg.Write {
		logging.Default().Info("changes discarded; use --write to save", logging.FieldPath, path)
		return nil
	}

	created, err := src.Replace(ctx, []byte(view.Text()), pipeline.BackupConfigFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("%w: %w", errRunFailed, err)
	}
	logging.Default().Info("saved", logging.FieldPath, path, logging.FieldBackup, created)
	return nil
}
