// Package runner provides multi-file orchestration: discovery and a worker
// pool that feeds files through a pipeline.Pipeline.
package runner

import (
	"slices"

	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/pipeline"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// walked in directories. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Pipeline configures per-file processing.
	Pipeline pipeline.Options
}

// SourceExtensions returns the extensions of the supported C-family languages.
func SourceExtensions() []string {
	return []string{
		".c", ".h",
		".cc", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx", ".h++",
		".java",
		".cs",
	}
}

// MarkdownExtensions returns the Markdown extensions scanned for fenced code.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// DefaultExtensions returns source and Markdown extensions.
func DefaultExtensions() []string {
	return append(SourceExtensions(), MarkdownExtensions()...)
}

// OptionsFromConfig builds run options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string, action pipeline.Action) Options {
	extensions := SourceExtensions()
	if cfg.Markdown {
		extensions = append(extensions, MarkdownExtensions()...)
	}
	for _, ext := range cfg.ExtraExtensions() {
		if !slices.Contains(extensions, ext) {
			extensions = append(extensions, ext)
		}
	}

	return Options{
		Paths:        paths,
		Extensions:   extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Pipeline:     pipeline.OptionsFromConfig(cfg, action),
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
