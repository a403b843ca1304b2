// Package reindent rewrites the leading whitespace of C-family source so
// that every line starts at the column the clike engine suggests.
package reindent

import (
	"strings"
	"unicode"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/stream"
)

// Options control how indentation is rewritten.
type Options struct {
	// TabSize is the visual width of a tab.
	TabSize int
	// UseTabs writes indentation with as many tabs as fit, then spaces.
	UseTabs bool
	// BaseColumn is the indentation of top-level code.
	BaseColumn int
}

func (o Options) tabSize() int {
	if o.TabSize <= 0 {
		return stream.DefaultTabSize
	}
	return o.TabSize
}

// Change records one re-indented line.
type Change struct {
	// Line is the 1-based line number.
	Line int `json:"line"`
	// From is the visual indentation before the change.
	From int `json:"from"`
	// To is the visual indentation after the change.
	To int `json:"to"`
}

// Result is the outcome of re-indenting a document.
type Result struct {
	Original string
	Text     string
	Changes  []Change
}

// Changed reports whether any line was rewritten.
func (r Result) Changed() bool {
	return len(r.Changes) > 0
}

// Document re-indents text. Lines are processed in order and the state for
// each line is derived from the already re-indented lines above it.
func Document(mode *clike.Mode, text string, opts Options) Result {
	lines := strings.Split(text, "\n")
	out, changes := Lines(mode, lines, opts)
	return Result{
		Original: text,
		Text:     strings.Join(out, "\n"),
		Changes:  changes,
	}
}

// Lines re-indents lines and returns the new lines with the changes made.
// Blank lines and lines that begin inside a comment or string are kept.
func Lines(mode *clike.Mode, lines []string, opts Options) ([]string, []Change) {
	state := mode.StartState(opts.BaseColumn)
	out := make([]string, len(lines))
	var changes []Change

	for i, line := range lines {
		updated := Line(mode, state, line, opts)
		if updated != line {
			changes = append(changes, Change{
				Line: i + 1,
				From: stream.CountColumn(line, stream.IndentEnd(line), opts.tabSize()),
				To:   stream.CountColumn(updated, stream.IndentEnd(updated), opts.tabSize()),
			})
		}
		out[i] = updated
		mode.ScanLine(stream.New(updated, opts.tabSize()), state)
	}
	return out, changes
}

// Line returns line re-indented for the state at the end of the previous
// line. state is not modified. A host calls this after an electric
// character is typed.
func Line(mode *clike.Mode, state *clike.State, line string, opts Options) string {
	body := strings.TrimLeft(line, " \t")
	if strings.TrimFunc(body, unicode.IsSpace) == "" || state.Scan.Pending() {
		return line
	}
	return Indentation(mode.Indent(state, body), opts) + body
}

// Indentation renders a visual indentation of cols columns.
func Indentation(cols int, opts Options) string {
	if cols <= 0 {
		return ""
	}
	if !opts.UseTabs {
		return strings.Repeat(" ", cols)
	}
	size := opts.tabSize()
	return strings.Repeat("\t", cols/size) + strings.Repeat(" ", cols%size)
}
