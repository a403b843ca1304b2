package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/clikemode/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("a.c", fsutil.BackupModeSidecar); got != "a.c.clikemode.bak" {
		t.Errorf("BackupPath(sidecar) = %q", got)
	}
	if got := fsutil.BackupPath("a.c", fsutil.BackupModeNone); got != "" {
		t.Errorf("BackupPath(none) = %q, want empty", got)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sidecar := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.c", "x")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar})
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})

	t.Run("mode none", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.c", "x")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})

	t.Run("keeps first backup", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.c", "first")
		created, err := fsutil.CreateBackup(ctx, path, sidecar)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}
		if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
			t.Fatal(err)
		}
		created, err = fsutil.CreateBackup(ctx, path, sidecar)
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}
		saved, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatal(err)
		}
		if string(saved) != "first" {
			t.Errorf("backup = %q, want %q", saved, "first")
		}
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.c")
		created, err := fsutil.CreateBackup(ctx, path, sidecar)
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})
}
