package mdfence_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/mdfence"
)

const doc = "# Title\n" +
	"\n" +
	"```c\n" +
	"int main() {\n" +
	"return 0;\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"func main() {}\n" +
	"```\n" +
	"\n" +
	"> ```java title=\"A.java\"\n" +
	"> class A {\n" +
	"> int x;\n" +
	"> }\n" +
	"> ```\n"

func TestFind(t *testing.T) {
	t.Parallel()

	content := []byte(doc)
	blocks := mdfence.Find(content)
	require.Len(t, blocks, 2)

	assert.Equal(t, clike.NameC, blocks[0].Language)
	assert.Equal(t, "c", blocks[0].Info)
	assert.Equal(t, 4, blocks[0].StartLine)
	assert.Equal(t, []string{"int main() {", "return 0;", "}"}, blocks[0].Text(content))

	assert.Equal(t, clike.NameJava, blocks[1].Language)
	assert.Equal(t, 14, blocks[1].StartLine)
	assert.Equal(t, []string{"class A {", "int x;", "}"}, blocks[1].Text(content))
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	content := []byte(doc)
	blocks := mdfence.Find(content)

	out := mdfence.Rewrite(content, blocks, func(_ mdfence.Block, lines []string) []string {
		updated := make([]string, len(lines))
		for i, line := range lines {
			updated[i] = strings.ToUpper(line)
		}
		return updated
	})

	got := string(out)
	assert.Contains(t, got, "```c\nINT MAIN() {\nRETURN 0;\n}\n```")
	assert.Contains(t, got, "> CLASS A {\n> INT X;\n> }\n")
	assert.Contains(t, got, "func main() {}", "non C-family blocks are untouched")
	assert.True(t, strings.HasPrefix(got, "# Title\n"))
}

func TestRewrite_LengthMismatchKeepsBlock(t *testing.T) {
	t.Parallel()

	content := []byte(doc)
	out := mdfence.Rewrite(content, mdfence.Find(content), func(_ mdfence.Block, _ []string) []string {
		return nil
	})
	assert.Equal(t, doc, string(out))
}

func TestFind_CRLF(t *testing.T) {
	t.Parallel()

	content := []byte("```cpp\r\nint x;\r\n```\r\n")
	blocks := mdfence.Find(content)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"int x;"}, blocks[0].Text(content))
}

func TestFind_SkipsEmptyAndUnknown(t *testing.T) {
	t.Parallel()

	content := []byte("```c\n```\n\n```\nint x;\n```\n\n    int indented;\n")
	assert.Empty(t, mdfence.Find(content))
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
		ok   bool
	}{
		{info: "c", want: clike.NameC, ok: true},
		{info: "C++", want: clike.NameCPP, ok: true},
		{info: "cs title=Program.cs", want: clike.NameCSharp, ok: true},
		{info: "{.java}", want: clike.NameJava, ok: true},
		{info: "python", ok: false},
		{info: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := mdfence.Language(tt.info)
		assert.Equal(t, tt.ok, ok, "info %q", tt.info)
		assert.Equal(t, tt.want, got, "info %q", tt.info)
	}
}
