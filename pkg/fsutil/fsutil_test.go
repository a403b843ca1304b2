package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/clikemode/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "int x;\n")

	src, err := fsutil.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(src.Content) != "int x;\n" {
		t.Errorf("Content = %q", src.Content)
	}
	if src.Size != 7 {
		t.Errorf("Size = %d, want 7", src.Size)
	}
	if src.Mode.Perm() != 0o600 {
		t.Errorf("Mode = %v, want 0600", src.Mode.Perm())
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.c"), want: fsutil.ErrNotFound},
		{name: "directory", path: dir, want: fsutil.ErrIsDirectory},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := fsutil.Load(context.Background(), testCase.path)
			if !errors.Is(err, testCase.want) {
				t.Errorf("Load() error = %v, want %v", err, testCase.want)
			}
		})
	}
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fsutil.Load(ctx, "whatever"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestSource_Modified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "one")

	src, err := fsutil.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if modified, err := src.Modified(ctx); err != nil || modified {
		t.Fatalf("Modified() = %v, %v; want false, nil", modified, err)
	}

	if err := os.WriteFile(path, []byte("two!"), 0o600); err != nil {
		t.Fatal(err)
	}
	if modified, err := src.Modified(ctx); err != nil || !modified {
		t.Errorf("Modified() after write = %v, %v; want true, nil", modified, err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if modified, err := src.Modified(ctx); err != nil || !modified {
		t.Errorf("Modified() after delete = %v, %v; want true, nil", modified, err)
	}
}

func TestSource_ModifiedSameSizeAndTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "aaaa")

	src, err := fsutil.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("bbbb"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, time.Time{}, src.ModTime); err != nil {
		t.Fatal(err)
	}

	modified, err := src.Modified(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !modified {
		t.Error("hash comparison should catch same-size edits")
	}
}

func TestSource_Replace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "old")

	src, err := fsutil.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	created, err := src.Replace(ctx, []byte("new"), backup)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if !created {
		t.Error("Replace() did not report the backup")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
	saved, err := os.ReadFile(path + fsutil.BackupSuffix)
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(saved) != "old" {
		t.Errorf("backup = %q, want %q", saved, "old")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSource_ReplaceRefusesConcurrentEdit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "old")

	src, err := fsutil.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("someone else"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err = src.Replace(ctx, []byte("new"), fsutil.BackupConfig{})
	if !errors.Is(err, fsutil.ErrModified) {
		t.Fatalf("Replace() error = %v, want ErrModified", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "someone else" {
		t.Errorf("file was overwritten: %q", got)
	}
}
