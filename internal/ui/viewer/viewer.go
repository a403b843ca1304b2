// Package viewer is a tcell terminal pager for one highlighted document.
//
// Besides scrolling, the viewer acts as a minimal editor host for the
// indentation engine: it shows the suggested indentation of the cursor
// line, re-indents lines on request, and re-indents a line as soon as an
// electric character is typed into it.
package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/highlight"
	"github.com/yaklabco/clikemode/pkg/reindent"
	"github.com/yaklabco/clikemode/pkg/stream"
)

// gutterWidth is the width of the line number column, separator included.
const gutterWidth = 6

// Options configure a Viewer.
type Options struct {
	// Path is shown in the status line.
	Path string
	// Language is the preset name shown in the status line.
	Language string
	// Indent controls re-indentation and tab expansion.
	Indent reindent.Options
}

// Viewer displays a document on a tcell screen.
type Viewer struct {
	screen tcell.Screen
	hl     *highlight.Highlighter
	opts   Options

	top      int
	cursor   int
	modified bool
	message  string
}

// New creates a viewer over text. The caller owns screen and must have
// initialized it.
func New(screen tcell.Screen, mode *clike.Mode, text string, opts Options) *Viewer {
	hl := highlight.New(mode, highlight.Options{
		TabSize:    opts.Indent.TabSize,
		BaseColumn: opts.Indent.BaseColumn,
	})
	hl.SetText(text)
	return &Viewer{screen: screen, hl: hl, opts: opts}
}

// Text returns the current document.
func (v *Viewer) Text() string {
	return v.hl.Text()
}

// Modified reports whether any line was re-indented or edited.
func (v *Viewer) Modified() bool {
	return v.modified
}

// Cursor returns the 0-based cursor line.
func (v *Viewer) Cursor() int {
	return v.cursor
}

// Run draws and handles events until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent so the loop can observe cancellation.
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		v.Draw()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(e) {
				return nil
			}
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
		}
	}
}

// HandleKey applies a key event and reports whether the viewer should keep
// running.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	v.message = ""
	_, height := v.screen.Size()
	page := max(1, height-1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(-1)
	case tcell.KeyDown:
		v.moveCursor(1)
	case tcell.KeyPgUp:
		v.moveCursor(-page)
	case tcell.KeyPgDn:
		v.moveCursor(page)
	case tcell.KeyHome:
		v.moveCursor(-v.cursor)
	case tcell.KeyEnd:
		v.moveCursor(v.hl.LineCount())
	case tcell.KeyRune:
		return v.handleRune(ev.Rune(), page)
	}
	return true
}

func (v *Viewer) handleRune(r rune, page int) bool {
	switch {
	case r == 'q':
		return false
	case r == 'j':
		v.moveCursor(1)
	case r == 'k':
		v.moveCursor(-1)
	case r == ' ':
		v.moveCursor(page)
	case r == 'b':
		v.moveCursor(-page)
	case r == 'g':
		v.moveCursor(-v.cursor)
	case r == 'G':
		v.moveCursor(v.hl.LineCount())
	case r == '=':
		v.reindentLine(v.cursor)
	case r == 'R':
		v.reindentAll()
	case r == 'o':
		v.openLine()
	case clike.IsElectric(r):
		v.typeElectric(r)
	}
	return true
}

func (v *Viewer) moveCursor(delta int) {
	v.cursor = max(0, min(v.cursor+delta, v.hl.LineCount()-1))
	v.scrollToCursor()
}

func (v *Viewer) scrollToCursor() {
	_, height := v.screen.Size()
	body := max(1, height-1)
	if v.cursor < v.top {
		v.top = v.cursor
	}
	if v.cursor >= v.top+body {
		v.top = v.cursor - body + 1
	}
}

// reindentLine rewrites the leading whitespace of line i.
func (v *Viewer) reindentLine(i int) {
	line := v.hl.Line(i).Text
	updated := reindent.Line(v.hl.Mode(), v.hl.StateAt(i), line, v.opts.Indent)
	if updated == line {
		v.message = "indentation ok"
		return
	}
	v.hl.SetLine(i, updated)
	v.modified = true
	v.message = fmt.Sprintf("line %d re-indented", i+1)
}

func (v *Viewer) reindentAll() {
	lines := highlight.SplitLines(v.hl.Text())
	out, changes := reindent.Lines(v.hl.Mode(), lines, v.opts.Indent)
	if len(changes) == 0 {
		v.message = "indentation ok"
		return
	}
	v.hl.SetLines(out)
	v.modified = true
	v.message = fmt.Sprintf("%d lines re-indented", len(changes))
}

// openLine inserts an indented empty line after the cursor.
func (v *Viewer) openLine() {
	lines := highlight.SplitLines(v.hl.Text())
	indent := reindent.Indentation(v.hl.IndentAfter(v.cursor, ""), v.opts.Indent)

	at := min(v.cursor+1, len(lines))
	lines = append(lines[:at], append([]string{indent}, lines[at:]...)...)
	v.hl.SetLines(lines)
	v.modified = true
	v.moveCursor(1)
}

// typeElectric appends r to the cursor line and re-indents it.
func (v *Viewer) typeElectric(r rune) {
	line := v.hl.Line(v.cursor).Text
	v.hl.SetLine(v.cursor, line+string(r))
	v.modified = true
	v.reindentLine(v.cursor)
}

// Draw renders the visible lines and the status line.
func (v *Viewer) Draw() {
	screen := v.screen
	screen.Clear()
	width, height := screen.Size()
	body := max(0, height-1)

	gutter := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := range body {
		i := v.top + row
		if i >= v.hl.LineCount() {
			break
		}
		base := tcell.StyleDefault
		if i == v.cursor {
			base = base.Background(tcell.ColorDarkSlateGray)
			fillRow(screen, row, width, base)
		}
		drawText(screen, 0, row, fmt.Sprintf("%*d ", gutterWidth-1, i+1), gutter)
		drawLine(screen, gutterWidth, row, width, v.hl.Line(i), base, v.tabSize())
	}

	if height > 0 {
		status := tcell.StyleDefault.Background(tcell.ColorDarkSlateBlue).Foreground(tcell.ColorWhite)
		fillRow(screen, height-1, width, status)
		drawText(screen, 0, height-1, truncate(v.statusLine(), width), status)
	}
	screen.Show()
}

func (v *Viewer) statusLine() string {
	line := v.hl.Line(v.cursor).Text
	current := stream.CountColumn(line, stream.IndentEnd(line), v.tabSize())

	parts := []string{
		v.opts.Path,
		v.opts.Language,
		fmt.Sprintf("%d/%d", v.cursor+1, v.hl.LineCount()),
		fmt.Sprintf("indent %d, suggested %d", current, v.hl.IndentAt(v.cursor)),
	}
	if v.modified {
		parts = append(parts, "[modified]")
	}
	if v.message != "" {
		parts = append(parts, v.message)
	}
	return " " + strings.Join(parts, " | ")
}

func (v *Viewer) tabSize() int {
	if v.opts.Indent.TabSize <= 0 {
		return stream.DefaultTabSize
	}
	return v.opts.Indent.TabSize
}
