// Package cli provides the Cobra command structure for clikemode.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/clikemode/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root clikemode command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "clikemode",
		Short: "Incremental highlighting and indentation for C-family code",
		Long: `clikemode highlights and re-indents C, C++, Java and C# source code.

It scans code one line at a time with a resumable lexer and a bracket
context stack, the same way an editor does while you type. Use it to print
highlighted listings, to check or fix indentation across a tree of files
(including fenced code blocks in Markdown), or to browse a file in a
terminal viewer that shows the suggested indentation of every line.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newIndentCommand())
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newLangsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
