package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/clikemode/internal/ui/pretty"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}

		if r.opts.Action == pipeline.ActionHighlight {
			total += r.writeHighlighted(path, file.Result)
		} else if r.writeIndent(path, file.Result) {
			total++
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Action))
	}

	return total, nil
}

// writeHighlighted prints every unit of a file and returns the unit count.
func (r *TextReporter) writeHighlighted(path string, res *pipeline.Result) int {
	if res.Skipped && len(res.Units) == 0 {
		if r.opts.Verbose {
			r.writeSkipped(path, res)
		}
		return 0
	}

	fmt.Fprintf(r.bw, "%s %s\n", r.styles.FilePath.Render(path), r.styles.Language.Render("("+res.Language+")"))
	for _, unit := range res.Units {
		if unit.Language != res.Language {
			fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("```%s (line %d)", unit.Language, unit.StartLine)))
		}
		if r.opts.LineNumbers {
			fmt.Fprint(r.bw, r.styles.RenderBlock(unit.Lines, unit.StartLine))
			continue
		}
		for _, line := range unit.Lines {
			fmt.Fprintln(r.bw, r.styles.RenderLine(line))
		}
	}
	fmt.Fprintln(r.bw)
	return len(res.Units)
}

// writeIndent prints the re-indented lines of a file and reports whether
// the file changed.
func (r *TextReporter) writeIndent(path string, res *pipeline.Result) bool {
	if res.Skipped && len(res.Units) == 0 {
		if r.opts.Verbose {
			r.writeSkipped(path, res)
		}
		return false
	}

	if !res.Changed() {
		if r.opts.Verbose {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Success.Render(res.Summary()))
		}
		return false
	}

	summary := res.Summary()
	style := r.styles.Change
	if res.Written {
		style = r.styles.Success
	}
	fmt.Fprintf(r.bw, "%s: %s %s\n",
		r.styles.FilePath.Render(path),
		style.Render(summary),
		r.styles.Dim.Render(fmt.Sprintf("(%d %s)", res.ChangeCount(), plural(res.ChangeCount(), "line", "lines"))),
	)

	for _, unit := range res.Units {
		for _, change := range unit.Changes {
			fmt.Fprintf(r.bw, "  %s indent %d -> %d\n",
				r.styles.LineNumber.Render(fmt.Sprintf("%d:", change.Line)), change.From, change.To)
		}
	}
	fmt.Fprintln(r.bw)
	return true
}

func (r *TextReporter) writeSkipped(path string, res *pipeline.Result) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Skipped.Render("skipped: "+res.SkipReason),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
