package runner

import "github.com/yaklabco/clikemode/pkg/pipeline"

// FileOutcome wraps a pipeline result with the processed path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *pipeline.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files scanned.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (unsupported language or
	// concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose indentation differs from
	// the computed one.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// LinesChanged is the number of re-indented lines across all files.
	LinesChanged int

	// Blocks is the number of scanned regions (files or fenced blocks).
	Blocks int

	// Tokens is the number of highlighted spans.
	Tokens int

	// Languages counts processed regions by language.
	Languages map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file needs (or received) re-indentation.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{Languages: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	if res.Skipped && len(res.Units) == 0 {
		r.Stats.FilesSkipped++
		return
	}
	r.Stats.FilesProcessed++
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Changed() {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}

	r.Stats.LinesChanged += res.ChangeCount()
	r.Stats.Tokens += res.TokenCount()
	r.Stats.Blocks += len(res.Units)
	for _, unit := range res.Units {
		r.Stats.Languages[unit.Language]++
	}
}
