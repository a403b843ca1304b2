package reindent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/reindent"
	"github.com/yaklabco/clikemode/pkg/stream"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  clike.Config
		opts    reindent.Options
		input   string
		want    string
		changed []int
	}{
		{
			name:   "nested blocks",
			config: clike.C(),
			opts:   reindent.Options{TabSize: 4},
			input: "int main() {\n" +
				"int x = 1;\n" +
				"      if (x) {\n" +
				"  x++;\n" +
				"        }\n" +
				"return x;\n" +
				"}",
			want: "int main() {\n" +
				"    int x = 1;\n" +
				"    if (x) {\n" +
				"        x++;\n" +
				"    }\n" +
				"    return x;\n" +
				"}",
			changed: []int{2, 3, 4, 5, 6},
		},
		{
			name:   "comment bodies are kept",
			config: clike.C(),
			opts:   reindent.Options{TabSize: 4},
			input:  "/*\n      keep me\n*/\nint a;",
			want:   "/*\n      keep me\n*/\nint a;",
		},
		{
			name:    "tabs",
			config:  clike.Java(),
			opts:    reindent.Options{TabSize: 4, UseTabs: true},
			input:   "void f() {\nx();\n}",
			want:    "void f() {\n\tx();\n}",
			changed: []int{2},
		},
		{
			name:    "whitespace only lines are kept",
			config:  clike.C(),
			opts:    reindent.Options{TabSize: 4},
			input:   "f() {\n   \ny;\n}",
			want:    "f() {\n   \n    y;\n}",
			changed: []int{3},
		},
		{
			name:    "aligned arguments",
			config:  clike.CSharp(),
			opts:    reindent.Options{TabSize: 4},
			input:   "Call(a,\nb);",
			want:    "Call(a,\n     b);",
			changed: []int{2},
		},
		{
			name:    "base column",
			config:  clike.C(),
			opts:    reindent.Options{TabSize: 4, BaseColumn: 2},
			input:   "int a;\nint b;",
			want:    "  int a;\n  int b;",
			changed: []int{1, 2},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := reindent.Document(clike.New(testCase.config), testCase.input, testCase.opts)
			assert.Equal(t, testCase.want, result.Text)
			assert.Equal(t, testCase.input, result.Original)

			var lines []int
			for _, change := range result.Changes {
				lines = append(lines, change.Line)
			}
			assert.Equal(t, testCase.changed, lines)
			assert.Equal(t, len(testCase.changed) > 0, result.Changed())
		})
	}
}

func TestDocument_Idempotent(t *testing.T) {
	t.Parallel()

	mode := clike.New(clike.CPP())
	input := "namespace a {\nclass B {\npublic:\nvoid f(int x,\nint y) {\nif (x)\ny++;\n}\n};\n}\n"

	first := reindent.Document(mode, input, reindent.Options{})
	second := reindent.Document(mode, first.Text, reindent.Options{})
	assert.False(t, second.Changed(), "second pass changed lines %v", second.Changes)
	assert.Equal(t, first.Text, second.Text)
}

func TestDocument_ChangeColumns(t *testing.T) {
	t.Parallel()

	result := reindent.Document(clike.New(clike.C()), "{\n\t\tx;\n}", reindent.Options{TabSize: 4})
	require.Len(t, result.Changes, 1)
	assert.Equal(t, reindent.Change{Line: 2, From: 8, To: 4}, result.Changes[0])
}

func TestLine_ElectricBrace(t *testing.T) {
	t.Parallel()

	mode := clike.New(clike.C())
	state := mode.StartState(0)
	mode.ScanLine(stream.New("if (x) {", 4), state)

	assert.Equal(t, "}", reindent.Line(mode, state, "      }", reindent.Options{}))
	assert.Equal(t, "    y();", reindent.Line(mode, state, "y();", reindent.Options{}))
	assert.Equal(t, 2, state.Depth(), "Line must not scan the line")
}

func TestIndentation(t *testing.T) {
	t.Parallel()

	assert.Empty(t, reindent.Indentation(0, reindent.Options{}))
	assert.Empty(t, reindent.Indentation(-3, reindent.Options{}))
	assert.Equal(t, "   ", reindent.Indentation(3, reindent.Options{}))
	assert.Equal(t, "\t  ", reindent.Indentation(6, reindent.Options{UseTabs: true, TabSize: 4}))
	assert.Equal(t, "\t", reindent.Indentation(8, reindent.Options{UseTabs: true, TabSize: 8}))
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	diff, err := reindent.GenerateDiff("src/a.c", "a\nb\nc\n", "a\n    b\nc\n")
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.False(t, diff.Empty())
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	assert.Contains(t, diff.Unified, "--- a/src/a.c")
	assert.Contains(t, diff.Unified, "+++ b/src/a.c")
	assert.Contains(t, diff.Unified, "-b\n")
	assert.Contains(t, diff.Unified, "+    b\n")

	none, err := reindent.GenerateDiff("src/a.c", "same", "same")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.True(t, none.Empty())
}

func TestResult_Diff(t *testing.T) {
	t.Parallel()

	result := reindent.Document(clike.New(clike.C()), "{\nx;\n}\n", reindent.Options{})
	diff, err := result.Diff("x.c")
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, "x.c", diff.Path)
	assert.Equal(t, 1, diff.Additions)
}
