package highlight_test

import (
	"reflect"
	"testing"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/highlight"
)

// FuzzHighlighter_Incremental checks that editing a document gives the same
// spans and indentation as highlighting the edited text from scratch.
func FuzzHighlighter_Incremental(f *testing.F) {
	f.Add(sample, "int main(void) {\n    /* open\n    return 0;\n}")
	f.Add("a = \"x\\\ny\";", "a = \"x\ny\";")
	f.Add("{\n(\n[", "}\n)\n]")

	f.Fuzz(func(t *testing.T, before, after string) {
		mode := clike.New(clike.CSharp())
		opts := highlight.Options{TabSize: 4}

		edited := highlight.New(mode, opts)
		edited.SetText(before)
		edited.Lines()
		edited.SetText(after)

		fresh := highlight.New(mode, opts)
		fresh.SetText(after)

		if !reflect.DeepEqual(edited.Lines(), fresh.Lines()) {
			t.Fatalf("incremental spans differ from a fresh scan of %q", after)
		}
		for i := range fresh.LineCount() {
			if got, want := edited.IndentAt(i), fresh.IndentAt(i); got != want {
				t.Fatalf("IndentAt(%d) = %d, want %d", i, got, want)
			}
		}
	})
}
