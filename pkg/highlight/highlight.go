// Package highlight drives a clike.Mode over whole documents.
//
// A Highlighter keeps the document as lines, caches the scanner state at
// the start of every line it has scanned, and scans lazily. Replacing the
// text keeps every cached state up to the first changed line, so an edit
// only re-scans from the edited line down to the line being asked for.
package highlight

import (
	"strings"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/stream"
)

// Span is a classified byte range of one line.
type Span struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Kind  clike.Kind  `json:"kind"`
	Style clike.Style `json:"style,omitempty"`
}

// Text returns the span's text within line.
func (s Span) Text(line string) string {
	if s.Start < 0 || s.End > len(line) || s.Start > s.End {
		return ""
	}
	return line[s.Start:s.End]
}

// Line is one highlighted line.
type Line struct {
	// Number is the 0-based line index.
	Number int
	Text   string
	Spans  []Span
}

// Options configure a Highlighter.
type Options struct {
	// TabSize is the visual tab width. Zero means stream.DefaultTabSize.
	TabSize int
	// BaseColumn is the indentation of top-level code.
	BaseColumn int
}

// Highlighter scans a document incrementally.
type Highlighter struct {
	mode *clike.Mode
	opts Options

	lines []string
	// states[i] is the state at the start of line i, valid for i <= valid.
	states []*clike.State
	spans  [][]Span
	valid  int

	revision int
	scanned  int
}

// New returns a Highlighter for an empty document.
func New(mode *clike.Mode, opts Options) *Highlighter {
	if opts.TabSize <= 0 {
		opts.TabSize = stream.DefaultTabSize
	}
	h := &Highlighter{mode: mode, opts: opts}
	h.reset(nil)
	return h
}

// Mode returns the mode the highlighter scans with.
func (h *Highlighter) Mode() *clike.Mode {
	return h.mode
}

// SplitLines splits text into lines on "\n". A trailing newline yields a
// final empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// SetText replaces the document and returns the index of the first line
// that differs from the previous text. Cached states before that line are
// kept.
func (h *Highlighter) SetText(text string) int {
	return h.SetLines(SplitLines(text))
}

// SetLines is SetText for a document that is already split.
func (h *Highlighter) SetLines(lines []string) int {
	first := firstDifference(h.lines, lines)
	if first == len(h.lines) && len(lines) == len(h.lines) {
		return first
	}

	h.revision++
	keep := min(h.valid, first)
	states := make([]*clike.State, len(lines)+1)
	copy(states, h.states[:keep+1])
	spans := make([][]Span, len(lines))
	copy(spans, h.spans[:min(keep, len(h.spans))])

	h.lines = append([]string(nil), lines...)
	h.states = states
	h.spans = spans
	h.valid = keep
	return first
}

// SetLine replaces line i. It is a no-op when i is out of range.
func (h *Highlighter) SetLine(i int, text string) {
	if i < 0 || i >= len(h.lines) || h.lines[i] == text {
		return
	}
	lines := append([]string(nil), h.lines...)
	lines[i] = text
	h.SetLines(lines)
}

// Text returns the document joined with "\n".
func (h *Highlighter) Text() string {
	return strings.Join(h.lines, "\n")
}

// LineCount returns the number of lines.
func (h *Highlighter) LineCount() int {
	return len(h.lines)
}

// Revision increments every time the text changes.
func (h *Highlighter) Revision() int {
	return h.revision
}

// Scanned returns how many line scans the highlighter has performed.
func (h *Highlighter) Scanned() int {
	return h.scanned
}

// Line returns the highlighted line i.
func (h *Highlighter) Line(i int) Line {
	if i < 0 || i >= len(h.lines) {
		return Line{Number: i}
	}
	h.ensure(i + 1)
	return Line{Number: i, Text: h.lines[i], Spans: h.spans[i]}
}

// Lines returns every highlighted line.
func (h *Highlighter) Lines() []Line {
	h.ensure(len(h.lines))
	out := make([]Line, len(h.lines))
	for i := range h.lines {
		out[i] = Line{Number: i, Text: h.lines[i], Spans: h.spans[i]}
	}
	return out
}

// StateAt returns a copy of the state at the start of line i. Passing
// LineCount returns the state at the end of the document.
func (h *Highlighter) StateAt(i int) *clike.State {
	i = max(0, min(i, len(h.lines)))
	h.ensure(i)
	return h.states[i].Copy()
}

// IndentAt returns the suggested indentation of line i given its current
// text.
func (h *Highlighter) IndentAt(i int) int {
	if i < 0 || i >= len(h.lines) {
		return h.IndentAfter(len(h.lines)-1, "")
	}
	h.ensure(i)
	return h.mode.Indent(h.states[i], strings.TrimLeft(h.lines[i], " \t"))
}

// IndentAfter returns the suggested indentation of a new line inserted
// after line i whose text will start with textAfter.
func (h *Highlighter) IndentAfter(i int, textAfter string) int {
	next := max(0, min(i+1, len(h.lines)))
	h.ensure(next)
	return h.mode.Indent(h.states[next], textAfter)
}

func (h *Highlighter) reset(lines []string) {
	h.lines = lines
	h.states = make([]*clike.State, len(lines)+1)
	h.states[0] = h.mode.StartState(h.opts.BaseColumn)
	h.spans = make([][]Span, len(lines))
	h.valid = 0
}

// ensure scans until the state at the start of line upto is known.
func (h *Highlighter) ensure(upto int) {
	for h.valid < upto {
		i := h.valid
		state := h.states[i].Copy()
		h.spans[i] = scanLine(h.mode, h.lines[i], h.opts.TabSize, state)
		h.states[i+1] = state
		h.valid++
		h.scanned++
	}
}

func scanLine(mode *clike.Mode, line string, tabSize int, state *clike.State) []Span {
	tokens := mode.ScanLine(stream.New(line, tabSize), state)
	spans := make([]Span, len(tokens))
	for i, tok := range tokens {
		spans[i] = Span{Start: tok.Start, End: tok.End, Kind: tok.Kind, Style: tok.Style}
	}
	return spans
}

func firstDifference(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Tokenize highlights text in one pass.
func Tokenize(mode *clike.Mode, opts Options, text string) []Line {
	h := New(mode, opts)
	h.SetText(text)
	return h.Lines()
}

// ValidateSpans reports whether spans are contiguous, non-empty, and cover
// [0, lineLen).
func ValidateSpans(spans []Span, lineLen int) bool {
	if len(spans) == 0 {
		return lineLen == 0
	}
	pos := 0
	for _, span := range spans {
		if span.Start != pos || span.End <= span.Start {
			return false
		}
		pos = span.End
	}
	return pos == lineLen
}
