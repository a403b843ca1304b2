package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/clikemode/internal/ui/pretty"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/runner"
)

// SummaryReporter prints only aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if _, err := fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.opts.Action)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	if r.opts.Action == pipeline.ActionHighlight {
		return result.Stats.Blocks, nil
	}
	return result.Stats.FilesChanged, nil
}
