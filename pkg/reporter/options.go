package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/pipeline"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Action is the operation that produced the result.
	Action pipeline.Action

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// LineNumbers prefixes highlighted lines with their line number.
	LineNumbers bool

	// Verbose also lists files that are already correctly indented.
	Verbose bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Action:      pipeline.ActionIndent,
		Color:       "auto",
		ShowSummary: true,
		LineNumbers: true,
	}
}

// OptionsFromConfig returns default options with the configured format,
// falling back to fallback when none is configured.
func OptionsFromConfig(cfg *config.Config, action pipeline.Action, fallback Format) Options {
	opts := DefaultOptions()
	opts.Action = action
	opts.Format = fallback
	if cfg != nil && cfg.Format != "" {
		opts.Format = Format(cfg.Format)
	}
	return opts
}

// displayPath makes path relative to the working directory when that does
// not climb out of it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
