package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/clikemode/pkg/highlight"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/reindent"
	"github.com/yaklabco/clikemode/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Action  string           `json:"action"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path          string     `json:"path"`
	Language      string     `json:"language,omitempty"`
	Units         []JSONUnit `json:"units"`
	Changed       bool       `json:"changed"`
	Written       bool       `json:"written,omitempty"`
	BackupCreated bool       `json:"backupCreated,omitempty"`
	Skipped       bool       `json:"skipped,omitempty"`
	SkipReason    string     `json:"skipReason,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// JSONUnit is one scanned region of a file.
type JSONUnit struct {
	Language  string            `json:"language"`
	StartLine int               `json:"startLine"`
	Lines     []JSONLine        `json:"lines,omitempty"`
	Changes   []reindent.Change `json:"changes,omitempty"`
}

// JSONLine is one highlighted line with its 1-based file line number.
type JSONLine struct {
	Line  int              `json:"line"`
	Text  string           `json:"text"`
	Spans []highlight.Span `json:"spans"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int            `json:"filesChecked"`
	FilesSkipped int            `json:"filesSkipped"`
	FilesErrored int            `json:"filesErrored"`
	FilesChanged int            `json:"filesChanged"`
	FilesWritten int            `json:"filesWritten"`
	LinesChanged int            `json:"linesChanged"`
	Blocks       int            `json:"blocks"`
	Tokens       int            `json:"tokens"`
	Languages    map[string]int `json:"languages"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	if r.opts.Action == pipeline.ActionHighlight {
		return output.Summary.Blocks, nil
	}
	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Action:  r.opts.Action.String(),
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{Languages: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked: stats.FilesProcessed,
		FilesSkipped: stats.FilesSkipped,
		FilesErrored: stats.FilesErrored,
		FilesChanged: stats.FilesChanged,
		FilesWritten: stats.FilesWritten,
		LinesChanged: stats.LinesChanged,
		Blocks:       stats.Blocks,
		Tokens:       stats.Tokens,
		Languages:    stats.Languages,
	}
	if output.Summary.Languages == nil {
		output.Summary.Languages = make(map[string]int)
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:  r.opts.displayPath(file.Path),
			Units: make([]JSONUnit, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Language = res.Language
			fileResult.Changed = res.Changed()
			fileResult.Written = res.Written
			fileResult.BackupCreated = res.BackupCreated
			fileResult.Skipped = res.Skipped
			fileResult.SkipReason = res.SkipReason
			for _, unit := range res.Units {
				fileResult.Units = append(fileResult.Units, jsonUnit(unit))
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonUnit(unit pipeline.Unit) JSONUnit {
	out := JSONUnit{
		Language:  unit.Language,
		StartLine: unit.StartLine,
		Changes:   unit.Changes,
	}
	for i, line := range unit.Lines {
		spans := line.Spans
		if spans == nil {
			spans = []highlight.Span{}
		}
		out.Lines = append(out.Lines, JSONLine{Line: unit.StartLine + i, Text: line.Text, Spans: spans})
	}
	return out
}
