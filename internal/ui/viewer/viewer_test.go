package viewer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/highlight"
	"github.com/yaklabco/clikemode/pkg/reindent"
)

const source = "int main() {\nreturn 0;\n}"

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(width, height)
	return s
}

func newViewer(t *testing.T, text string) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	s := newScreen(t, 60, 8)
	v := New(s, clike.New(clike.C()), text, Options{
		Path:     "main.c",
		Language: clike.NameC,
		Indent:   reindent.Options{TabSize: 4},
	})
	return v, s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func rowText(s tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDraw_ShowsLinesAndStatus(t *testing.T) {
	v, s := newViewer(t, source)
	v.Draw()

	if got := rowText(s, 0, 60); got != "    1 int main() {" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := rowText(s, 1, 60); got != "    2 return 0;" {
		t.Fatalf("row 1 = %q", got)
	}
	status := rowText(s, 7, 60)
	for _, want := range []string{"main.c", "c", "1/3", "indent 0, suggested 0"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
}

func TestDraw_KeywordStyled(t *testing.T) {
	v, s := newViewer(t, source)
	v.cursor = 2
	v.Draw()

	_, _, got, _ := s.GetContent(gutterWidth, 0)
	gotFg, _, _ := got.Decompose()
	wantFg, _, _ := tokenStyle(tcell.StyleDefault, clike.StyleKeyword).Decompose()
	if gotFg != wantFg {
		t.Fatalf("keyword foreground = %v, want %v", gotFg, wantFg)
	}
}

func TestDrawLine_TabKeepsStyleAlignment(t *testing.T) {
	s := newScreen(t, 20, 1)
	lines := highlight.Tokenize(clike.New(clike.C()), highlight.Options{TabSize: 4}, "\tif")

	drawLine(s, 0, 0, 20, lines[0], tcell.StyleDefault, 4)

	r, _, got, _ := s.GetContent(4, 0)
	if r != 'i' {
		t.Fatalf("rune after tab = %q, want 'i'", r)
	}
	gotFg, _, _ := got.Decompose()
	wantFg, _, _ := tokenStyle(tcell.StyleDefault, clike.StyleKeyword).Decompose()
	if gotFg != wantFg {
		t.Fatalf("tab-aligned rune foreground=%v, want %v", gotFg, wantFg)
	}
}

func TestHandleKey_Navigation(t *testing.T) {
	v, _ := newViewer(t, source)

	v.HandleKey(key('j'))
	v.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if v.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", v.Cursor())
	}
	v.HandleKey(key('j'))
	if v.Cursor() != 2 {
		t.Fatalf("cursor moved past the last line: %d", v.Cursor())
	}
	v.HandleKey(key('g'))
	if v.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", v.Cursor())
	}
	if v.HandleKey(key('q')) {
		t.Fatal("q should stop the viewer")
	}
}

func TestHandleKey_ScrollsToCursor(t *testing.T) {
	v, _ := newViewer(t, strings.Repeat("x;\n", 30))
	v.HandleKey(key('G'))
	if v.top == 0 {
		t.Fatal("expected viewport to scroll")
	}
	if v.cursor < v.top || v.cursor >= v.top+7 {
		t.Fatalf("cursor %d outside viewport starting at %d", v.cursor, v.top)
	}
}

func TestHandleKey_ReindentLine(t *testing.T) {
	v, _ := newViewer(t, source)
	v.HandleKey(key('j'))
	v.HandleKey(key('='))

	if !v.Modified() {
		t.Fatal("expected modification")
	}
	if got := v.Text(); got != "int main() {\n    return 0;\n}" {
		t.Fatalf("text = %q", got)
	}
	if !strings.Contains(v.statusLine(), "line 2 re-indented") {
		t.Fatalf("status = %q", v.statusLine())
	}
}

func TestHandleKey_ReindentAll(t *testing.T) {
	v, _ := newViewer(t, "void f() {\nif (x) {\ng();\n}\n}")
	v.HandleKey(key('R'))

	want := "void f() {\n    if (x) {\n        g();\n    }\n}"
	if got := v.Text(); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestHandleKey_OpenLineAndElectricBrace(t *testing.T) {
	v, _ := newViewer(t, "int main() {\n    return 0;")
	v.HandleKey(key('j'))
	v.HandleKey(key('o'))

	if v.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", v.Cursor())
	}
	if got := v.Text(); got != "int main() {\n    return 0;\n    " {
		t.Fatalf("after open = %q", got)
	}

	v.HandleKey(key('}'))
	if got := v.Text(); got != "int main() {\n    return 0;\n}" {
		t.Fatalf("after electric brace = %q", got)
	}
}

func TestRun_QuitsOnKey(t *testing.T) {
	v, s := newViewer(t, source)
	s.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}
	if v.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", v.Cursor())
	}
}

func TestRun_Cancelled(t *testing.T) {
	v, _ := newViewer(t, source)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer ignored cancellation")
	}
}
