// Package pipeline processes a single file: it resolves the file's language,
// highlights or re-indents it, and writes the result back safely.
package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/clikemode/internal/logging"
	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/fsutil"
	"github.com/yaklabco/clikemode/pkg/highlight"
	"github.com/yaklabco/clikemode/pkg/langdetect"
	"github.com/yaklabco/clikemode/pkg/mdfence"
	"github.com/yaklabco/clikemode/pkg/reindent"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupported indicates the file's language could not be determined.
	ErrUnsupported = errors.New("unsupported language")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Action selects what the pipeline does with a file.
type Action int

// Actions.
const (
	// ActionHighlight classifies every line into spans.
	ActionHighlight Action = iota
	// ActionIndent computes re-indentation and optionally writes it.
	ActionIndent
)

// String returns the command name of the action.
func (a Action) String() string {
	if a == ActionIndent {
		return "indent"
	}
	return "highlight"
}

// Options controls pipeline behavior.
type Options struct {
	Action Action

	// Write applies re-indentation to the file on disk.
	Write bool

	// Backup configures backups taken before writing.
	Backup fsutil.BackupConfig
}

// OptionsFromConfig derives pipeline options for action from cfg.
func OptionsFromConfig(cfg *config.Config, action Action) Options {
	return Options{
		Action: action,
		Write:  action == ActionIndent && cfg.Write,
		Backup: BackupConfigFromConfig(cfg),
	}
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar}
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}

// Unit is one independently scanned region of a file: the whole file for
// source code, or one fenced code block for Markdown.
type Unit struct {
	// Language is the preset name used for the region.
	Language string `json:"language"`

	// StartLine is the 1-based file line of the region's first line.
	StartLine int `json:"start_line"`

	// Lines holds highlighted lines (highlight action only).
	Lines []highlight.Line `json:"lines,omitempty"`

	// Changes lists re-indented lines with file-relative line numbers
	// (indent action only).
	Changes []reindent.Change `json:"changes,omitempty"`
}

// Result contains the outcome of processing a single file.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// Language is the detected language, "markdown" for Markdown documents.
	Language string

	// Units are the scanned regions in file order.
	Units []Unit

	// Original is the file content before processing.
	Original []byte

	// Modified is the re-indented content, nil when nothing changed.
	Modified []byte

	// Diff is the unified diff between Original and Modified.
	Diff *reindent.Diff

	// Skipped is true if the file was not processed or not written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Changed reports whether re-indentation would modify the file.
func (r *Result) Changed() bool {
	return r != nil && r.Modified != nil
}

// ChangeCount returns the number of re-indented lines.
func (r *Result) ChangeCount() int {
	n := 0
	for _, unit := range r.Units {
		n += len(unit.Changes)
	}
	return n
}

// TokenCount returns the number of highlighted spans.
func (r *Result) TokenCount() int {
	n := 0
	for _, unit := range r.Units {
		for _, line := range unit.Lines {
			n += len(line.Spans)
		}
	}
	return n
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "re-indented (backup created)"
	case r.Written:
		return "re-indented"
	case r.Changed():
		return "needs re-indent"
	default:
		return "ok"
	}
}

// Pipeline orchestrates the processing of a single file.
type Pipeline struct {
	// Config supplies language resolution and indentation settings.
	Config *config.Config
}

// New creates a pipeline for cfg. A nil cfg uses defaults.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Pipeline{Config: cfg}
}

// ProcessFile runs the pipeline for the file at path.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Resolve the language and process the content.
//  3. When writing, check for concurrent modification, back up, and
//     replace the file atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := fsutil.Load(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, src.Content, opts)
	if errors.Is(err, ErrUnsupported) {
		return &Result{Path: path, Original: src.Content, Skipped: true, SkipReason: err.Error()}, nil
	}
	if err != nil {
		return nil, err
	}

	if !opts.Write || !result.Changed() {
		return result, nil
	}

	created, err := src.Replace(ctx, result.Modified, opts.Backup)
	switch {
	case errors.Is(err, fsutil.ErrModified):
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		logging.FromContext(ctx).Warn("not rewritten", logging.FieldReason, result.SkipReason)
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created
	result.Written = true
	logging.FromContext(ctx).Debug("rewritten",
		logging.FieldLinesChanged, result.ChangeCount(), logging.FieldBackup, created)
	return result, nil
}

// ProcessContent processes in-memory content without file I/O.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	lang, err := p.Resolve(path, content)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Language: lang, Original: content}
	if lang == langdetect.Markdown {
		err = p.processMarkdown(result, content, opts)
	} else {
		err = p.processSource(result, lang, content, opts)
	}
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("processed",
		logging.FieldLanguage, lang,
		logging.FieldBlock, len(result.Units),
		logging.FieldLinesChanged, result.ChangeCount(),
	)

	if result.Modified != nil {
		diff, err := reindent.GenerateDiff(path, string(content), string(result.Modified))
		if err != nil {
			return nil, err
		}
		result.Diff = diff
	}
	return result, nil
}

// Resolve returns the language for a file: the forced language, then the
// configured extension mapping, then detection.
func (p *Pipeline) Resolve(path string, content []byte) (string, error) {
	if p.Config.Language != "" {
		name, ok := clike.Canonical(p.Config.Language)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnsupported, p.Config.Language)
		}
		return name, nil
	}

	if lang, ok := p.Config.LanguageForPath(path); ok {
		name, ok := clike.Canonical(lang)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnsupported, lang)
		}
		return name, nil
	}

	lang := langdetect.Detect(path, content)
	switch {
	case lang == langdetect.Unknown:
		return "", ErrUnsupported
	case lang == langdetect.Markdown && !p.Config.Markdown:
		return "", fmt.Errorf("%w: markdown processing is disabled", ErrUnsupported)
	}
	return lang, nil
}

// Mode builds the configured mode for a language.
func (p *Pipeline) Mode(lang string) (*clike.Mode, error) {
	cfg, err := p.Config.Language(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return clike.New(cfg), nil
}

func (p *Pipeline) processSource(result *Result, lang string, content []byte, opts Options) error {
	mode, err := p.Mode(lang)
	if err != nil {
		return err
	}

	lines := highlight.SplitLines(string(content))
	unit, updated := p.processLines(mode, lang, lines, 1, opts)
	result.Units = append(result.Units, unit)
	if len(unit.Changes) > 0 {
		result.Modified = []byte(strings.Join(updated, "\n"))
	}
	return nil
}

func (p *Pipeline) processMarkdown(result *Result, content []byte, opts Options) error {
	blocks := mdfence.Find(content)
	modes := make(map[string]*clike.Mode)
	changed := false

	modeFor := func(lang string) (*clike.Mode, error) {
		if mode, ok := modes[lang]; ok {
			return mode, nil
		}
		mode, err := p.Mode(lang)
		if err != nil {
			return nil, err
		}
		modes[lang] = mode
		return mode, nil
	}

	var firstErr error
	rewritten := mdfence.Rewrite(content, blocks, func(block mdfence.Block, lines []string) []string {
		mode, err := modeFor(block.Language)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return lines
		}
		unit, updated := p.processLines(mode, block.Language, lines, block.StartLine, opts)
		result.Units = append(result.Units, unit)
		if len(unit.Changes) > 0 {
			changed = true
		}
		return updated
	})
	if firstErr != nil {
		return firstErr
	}

	// Blocks that cannot be rewritten byte for byte are still highlighted.
	if opts.Action == ActionHighlight {
		for _, block := range blocks {
			if block.Rewritable() {
				continue
			}
			mode, err := modeFor(block.Language)
			if err != nil {
				return err
			}
			unit, _ := p.processLines(mode, block.Language, block.Text(content), block.StartLine, opts)
			result.Units = append(result.Units, unit)
		}
		sortUnits(result.Units)
	}

	if changed {
		result.Modified = rewritten
	}
	return nil
}

// processLines scans one region. startLine is the 1-based file line of
// lines[0].
func (p *Pipeline) processLines(
	mode *clike.Mode,
	lang string,
	lines []string,
	startLine int,
	opts Options,
) (Unit, []string) {
	unit := Unit{Language: lang, StartLine: startLine}

	if opts.Action == ActionHighlight {
		h := highlight.New(mode, highlight.Options{TabSize: p.Config.TabSize})
		h.SetLines(lines)
		unit.Lines = h.Lines()
		return unit, lines
	}

	updated, changes := reindent.Lines(mode, lines, reindent.Options{
		TabSize: p.Config.TabSize,
		UseTabs: p.Config.UseTabs,
	})
	for i := range changes {
		changes[i].Line += startLine - 1
	}
	unit.Changes = changes
	return unit, updated
}

func sortUnits(units []Unit) {
	slices.SortStableFunc(units, func(a, b Unit) int {
		return cmp.Compare(a.StartLine, b.StartLine)
	})
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrUnsupported) ||
		errors.Is(err, ErrWriteFailure)
}
