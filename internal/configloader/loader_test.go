package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/clikemode/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, 4, result.Config.IndentUnit)
	assert.True(t, result.Config.Markdown)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeConfig(t, tmpDir, ".clikemode.yml", `
indent_unit: 2
markdown: false
languages:
  java:
    annotations: false
`)
	subDir := filepath.Join(tmpDir, "src", "main")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	result, err := Load(context.Background(), isolated(subDir))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Config.IndentUnit)
	assert.False(t, result.Config.Markdown, "explicit false in a file overrides the default")
	assert.Equal(t, 4, result.Config.TabSize, "absent keys keep defaults")
	require.Len(t, result.LoadedFrom, 1)

	java, err := result.Config.Language("java")
	require.NoError(t, err)
	assert.False(t, java.Annotations)
	assert.Equal(t, 2, java.IndentUnit)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeConfig(t, tmpDir, ".clikemode.yml", `
indent_unit: 2
extensions:
  .inl: cpp
languages:
  c:
    indent_unit: 3
    directives: false
`)
	custom := writeConfig(t, tmpDir, "custom.yml", `
tab_size: 8
extensions:
  .pde: java
languages:
  c:
    indent_unit: 8
`)

	opts := isolated(tmpDir)
	opts.ExplicitPath = custom
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Config.IndentUnit)
	assert.Equal(t, 8, result.Config.TabSize)
	assert.Equal(t, map[string]string{".inl": "cpp", ".pde": "java"}, result.Config.Extensions)
	require.Contains(t, result.Config.Languages, "c")
	assert.Equal(t, 8, *result.Config.Languages["c"].IndentUnit)
	assert.False(t, *result.Config.Languages["c"].Directives, "per-field language merge")
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeConfig(t, tmpDir, ".clikemode.yml", "indent_unit: 2\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{IndentUnit: 8, Write: true, Language: "c++"}
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Config.IndentUnit)
	assert.True(t, result.Config.Write)
	assert.Equal(t, "c++", result.Config.Language)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "negative indent", content: "indent_unit: -1\n", field: "indent_unit"},
		{name: "unknown language key", content: "languages:\n  cobol: {}\n", field: "languages.cobol"},
		{name: "unknown extension language", content: "extensions:\n  .x: rust\n", field: "extensions..x"},
		{name: "bad backup mode", content: "backups:\n  mode: cloud\n", field: "backups.mode"},
		{name: "bad glob", content: "ignore:\n  - \"[\"\n", field: "ignore[0]"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
			writeConfig(t, tmpDir, ".clikemode.yml", testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.Equal(t, testCase.field, validationErr.Field)
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	path := writeConfig(t, tmpDir, ".clikemode.yml", "indnet_unit: 2\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_AliasKeyWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeConfig(t, tmpDir, ".clikemode.yml", "languages:\n  c++:\n    indent_unit: 2\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"cpp"`)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".clikemode.yml", "indent_unit: 2\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path, "config above the repository root is not used")
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CLIKEMODE_INDENT_UNIT": "2",
		"CLIKEMODE_USE_TABS":    "true",
		"CLIKEMODE_MARKDOWN":    "0",
		"CLIKEMODE_IGNORE":      "vendor/**, build/** ,",
		"CLIKEMODE_LANGUAGE":    "java",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromLookup(cfg, lookup))

	assert.Equal(t, 2, cfg.IndentUnit)
	assert.True(t, cfg.UseTabs)
	assert.False(t, cfg.Markdown)
	assert.Equal(t, []string{"vendor/**", "build/**"}, cfg.Ignore)
	assert.Equal(t, "java", cfg.Language)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "CLIKEMODE_JOBS" {
			return "many", true
		}
		return "", false
	}

	err := loadFromLookup(config.NewConfig(), lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIKEMODE_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"a"}
	merged := MergeAll(base, &config.Config{Check: true}, &config.Config{Ignore: []string{"b"}})

	assert.True(t, merged.Check)
	assert.Equal(t, []string{"b"}, merged.Ignore)
	assert.Equal(t, []string{"a"}, base.Ignore, "inputs are not mutated")
	assert.Nil(t, MergeAll())
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".clikemode.yml")
	cfg := config.NewConfig()
	cfg.IndentUnit = 2
	require.NoError(t, WriteConfig(cfg, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.IndentUnit)
}

func TestFindProjectConfig_SearchesUpward(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	want := writeConfig(t, tmpDir, ".clikemode.json", `{"indent_unit": 2}`)
	nested := filepath.Join(tmpDir, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Config.IndentUnit, "json project files are decoded as YAML")
}

func TestFindProjectConfig_PrefersYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	want := writeConfig(t, tmpDir, ".clikemode.yml", "indent_unit: 8\n")
	writeConfig(t, tmpDir, ".clikemode.json", `{"indent_unit": 2}`)

	path, err := FindProjectConfig(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}
