package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	data := []byte("category,total_revenue\ncat1,175\n")
	if err := fs.Save(ctx, "run-1", KindSummary, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := fs.Open(ctx, "run-1", KindSummary)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, _ := io.ReadAll(rc)
	if string(got) != string(data) {
		t.Errorf("Open() = %q, want %q", got, data)
	}
}

func TestFileStore_OpenMissing(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	_, err = fs.Open(context.Background(), "nope", KindCleaned)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_Exists(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if fs.Exists(ctx, "run-1", KindCleaned) {
		t.Error("Exists() = true before Save")
	}
	if err := fs.Save(ctx, "run-1", KindCleaned, []byte("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !fs.Exists(ctx, "run-1", KindCleaned) {
		t.Error("Exists() = false after Save")
	}
	// Kinds are independent namespaces.
	if fs.Exists(ctx, "run-1", KindSummary) {
		t.Error("Exists() = true for other kind")
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := fs.Save(context.Background(), "run-1", KindCleaned, []byte("data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, string(KindCleaned)))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the published artifact, found %d entries", len(entries))
	}
	if entries[0].Name() != "run-1.csv" {
		t.Errorf("artifact name = %q, want run-1.csv", entries[0].Name())
	}
}

func TestKind_FileName(t *testing.T) {
	if got := KindCleaned.FileName("abc"); got != "abc.csv" {
		t.Errorf("cleaned file name = %q", got)
	}
	if got := KindSummary.FileName("abc"); got != "abc_sr.csv" {
		t.Errorf("summary file name = %q", got)
	}
}
