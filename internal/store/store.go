// Package store provides the artifact storage abstraction for cleaning
// runs. The core never hard-codes a location: it addresses artifacts by
// process identifier and kind, and the store resolves where the bytes
// live.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound indicates that no artifact exists for the given process
// identifier and kind.
var ErrNotFound = errors.New("artifact not found")

// Kind names one of the artifacts produced by a cleaning run.
type Kind string

const (
	KindCleaned Kind = "cleaned"
	KindSummary Kind = "summary"
)

// FileName returns the published file name for a process identifier,
// matching the `{id}.csv` / `{id}_sr.csv` naming consumers rely on.
func (k Kind) FileName(processID string) string {
	if k == KindSummary {
		return processID + "_sr.csv"
	}
	return processID + ".csv"
}

// Store persists and retrieves run artifacts. Save is all-or-nothing: a
// failed write must never leave a partial artifact readable.
type Store interface {
	Save(ctx context.Context, processID string, kind Kind, data []byte) error
	Open(ctx context.Context, processID string, kind Kind) (io.ReadCloser, error)
	Exists(ctx context.Context, processID string, kind Kind) bool
}

// FileStore keeps artifacts on disk under a base directory, one
// subdirectory per kind. Writes go to a temp file in the target
// directory and are published with an atomic rename.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the kind subdirectories under baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	for _, kind := range []Kind{KindCleaned, KindSummary} {
		dir := filepath.Join(baseDir, string(kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create artifact dir %s: %w", dir, err)
		}
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(processID string, kind Kind) string {
	return filepath.Join(s.baseDir, string(kind), kind.FileName(processID))
}

// Save writes the artifact atomically. The temp file lives in the same
// directory so the rename cannot cross filesystems.
func (s *FileStore) Save(ctx context.Context, processID string, kind Kind, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.path(processID, kind)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+kind.FileName(processID)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

// Open returns a reader over the artifact, or ErrNotFound.
func (s *FileStore) Open(ctx context.Context, processID string, kind Kind) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(processID, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s %s: %w", kind, processID, ErrNotFound)
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}

// Exists reports whether the artifact has been published.
func (s *FileStore) Exists(ctx context.Context, processID string, kind Kind) bool {
	info, err := os.Stat(s.path(processID, kind))
	return err == nil && !info.IsDir()
}
