package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/config"
	"github.com/yaklabco/clikemode/pkg/fsutil"
	"github.com/yaklabco/clikemode/pkg/pipeline"
)

const misindented = "int main() {\nreturn 0;\n}\n"

const markdownDoc = "# Title\n" +
	"\n" +
	"```c\n" +
	"void f() {\n" +
	"g();\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"```python\n" +
	"def f():\n" +
	"pass\n" +
	"```\n" +
	"\n" +
	"```java\n" +
	"class A {\n" +
	"    int x;\n" +
	"}\n" +
	"```\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func indentOpts(write bool) pipeline.Options {
	return pipeline.Options{Action: pipeline.ActionIndent, Write: write}
}

func TestProcessContent_Highlight(t *testing.T) {
	t.Parallel()

	p := pipeline.New(nil)
	result, err := p.ProcessContent(context.Background(), "a.c", []byte("int x = 1;\n"),
		pipeline.Options{Action: pipeline.ActionHighlight})
	require.NoError(t, err)

	assert.Equal(t, clike.NameC, result.Language)
	require.Len(t, result.Units, 1)
	unit := result.Units[0]
	assert.Equal(t, 1, unit.StartLine)
	require.Len(t, unit.Lines, 2)
	require.NotEmpty(t, unit.Lines[0].Spans)
	assert.Equal(t, clike.KindKeyword, unit.Lines[0].Spans[0].Kind)
	assert.False(t, result.Changed())
	assert.Positive(t, result.TokenCount())
}

func TestProcessContent_Indent(t *testing.T) {
	t.Parallel()

	p := pipeline.New(nil)
	result, err := p.ProcessContent(context.Background(), "a.c", []byte(misindented), indentOpts(false))
	require.NoError(t, err)

	require.True(t, result.Changed())
	assert.Equal(t, "int main() {\n    return 0;\n}\n", string(result.Modified))
	assert.Equal(t, 1, result.ChangeCount())
	require.NotNil(t, result.Diff)
	assert.Equal(t, 1, result.Diff.Additions)
	assert.Equal(t, 1, result.Diff.Deletions)
	assert.Equal(t, "needs re-indent", result.Summary())
}

func TestProcessContent_IndentUnitFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.IndentUnit = 2
	result, err := pipeline.New(cfg).ProcessContent(context.Background(), "a.c", []byte(misindented), indentOpts(false))
	require.NoError(t, err)
	assert.Equal(t, "int main() {\n  return 0;\n}\n", string(result.Modified))
}

func TestProcessContent_AlreadyIndented(t *testing.T) {
	t.Parallel()

	content := "class A {\n    void f() {\n        g();\n    }\n}\n"
	result, err := pipeline.New(nil).ProcessContent(context.Background(), "A.java", []byte(content), indentOpts(false))
	require.NoError(t, err)

	assert.False(t, result.Changed())
	assert.Nil(t, result.Diff)
	assert.Equal(t, "ok", result.Summary())
}

func TestProcessContent_Markdown(t *testing.T) {
	t.Parallel()

	p := pipeline.New(nil)

	t.Run("indent rewrites only C-family blocks", func(t *testing.T) {
		t.Parallel()

		result, err := p.ProcessContent(context.Background(), "README.md", []byte(markdownDoc), indentOpts(false))
		require.NoError(t, err)

		assert.Equal(t, "markdown", result.Language)
		require.Len(t, result.Units, 2)
		assert.Equal(t, clike.NameC, result.Units[0].Language)
		assert.Equal(t, clike.NameJava, result.Units[1].Language)

		require.Len(t, result.Units[0].Changes, 1)
		assert.Equal(t, 5, result.Units[0].Changes[0].Line, "line numbers are file-relative")
		assert.Empty(t, result.Units[1].Changes)

		require.True(t, result.Changed())
		assert.Contains(t, string(result.Modified), "void f() {\n    g();\n}\n")
		assert.Contains(t, string(result.Modified), "def f():\npass\n", "other languages are untouched")
	})

	t.Run("highlight", func(t *testing.T) {
		t.Parallel()

		result, err := p.ProcessContent(context.Background(), "README.md", []byte(markdownDoc),
			pipeline.Options{Action: pipeline.ActionHighlight})
		require.NoError(t, err)

		require.Len(t, result.Units, 2)
		assert.Equal(t, 4, result.Units[0].StartLine)
		assert.Len(t, result.Units[0].Lines, 3)
		assert.False(t, result.Changed())
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Markdown = false
		_, err := pipeline.New(cfg).ProcessContent(context.Background(), "README.md", []byte(markdownDoc), indentOpts(false))
		require.ErrorIs(t, err, pipeline.ErrUnsupported)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(*config.Config)
		path    string
		content string
		want    string
		wantErr error
	}{
		{name: "extension", path: "main.cpp", want: clike.NameCPP},
		{name: "csharp", path: "Program.cs", want: clike.NameCSharp},
		{name: "forced alias", setup: func(c *config.Config) { c.Language = "c#" }, path: "x.txt", want: clike.NameCSharp},
		{name: "forced unknown", setup: func(c *config.Config) { c.Language = "rust" }, path: "x.c", wantErr: pipeline.ErrUnsupported},
		{name: "configured extension", setup: func(c *config.Config) {
			c.Extensions = map[string]string{".inl": "c++"}
		}, path: "vec.inl", want: clike.NameCPP},
		{name: "other language", path: "main.go", content: "package main\n", wantErr: pipeline.ErrUnsupported},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			if testCase.setup != nil {
				testCase.setup(cfg)
			}
			got, err := pipeline.New(cfg).Resolve(testCase.path, []byte(testCase.content))
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestProcessFile_Write(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "main.c", misindented)
	opts := indentOpts(true)
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := pipeline.New(nil).ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "re-indented (backup created)", result.Summary())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int main() {\n    return 0;\n}\n", string(content))

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, misindented, string(backup))
}

func TestProcessFile_CheckDoesNotWrite(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "main.c", misindented)
	result, err := pipeline.New(nil).ProcessFile(context.Background(), path, indentOpts(false))
	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.False(t, result.Written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, misindented, string(content))
}

func TestProcessFile_UnsupportedIsSkipped(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "notes.txt", "just words\n")
	result, err := pipeline.New(nil).ProcessFile(context.Background(), path, indentOpts(false))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Contains(t, result.SkipReason, "unsupported language")
}

func TestProcessFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(nil).ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.c"), indentOpts(false))
	require.ErrorIs(t, err, pipeline.ErrFileNotFound)
	assert.True(t, pipeline.IsPipelineError(err))
}

func TestProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.New(nil).ProcessContent(ctx, "a.c", []byte("int x;"), indentOpts(false))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBackupConfigFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true
	assert.True(t, pipeline.BackupConfigFromConfig(cfg).Enabled)

	cfg.NoBackups = true
	assert.False(t, pipeline.BackupConfigFromConfig(cfg).Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, pipeline.BackupConfigFromConfig(nil).Mode)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	assert.True(t, pipeline.OptionsFromConfig(cfg, pipeline.ActionIndent).Write)
	assert.False(t, pipeline.OptionsFromConfig(cfg, pipeline.ActionHighlight).Write)
	assert.Equal(t, "indent", pipeline.ActionIndent.String())
}
