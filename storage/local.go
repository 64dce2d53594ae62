package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrOutsideSpool is returned for storage paths that resolve outside the spool directory
var ErrOutsideSpool = errors.New("storage path escapes spool directory")

// LocalStorage spools staged evidence under one directory per case session.
// A file becomes visible only once fully written.
type LocalStorage struct {
	spoolDir string
}

func NewLocalStorage(spoolDir string) (*LocalStorage, error) {
	abs, err := filepath.Abs(spoolDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve spool directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}
	return &LocalStorage{spoolDir: abs}, nil
}

// resolve maps a storage path to a file inside the spool
func (s *LocalStorage) resolve(storagePath string) (string, error) {
	full := filepath.Join(s.spoolDir, filepath.FromSlash(storagePath))
	rel, err := filepath.Rel(s.spoolDir, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", fmt.Errorf("%w: %s", ErrOutsideSpool, storagePath)
	}
	return full, nil
}

func (s *LocalStorage) Put(ctx context.Context, scope, fileID uuid.UUID, filename string, data io.Reader) (string, error) {
	storagePath := generateStoragePath(scope, fileID, filename)
	full, err := s.resolve(storagePath)
	if err != nil {
		return "", err
	}

	sessionDir := filepath.Dir(full)
	if err := os.MkdirAll(sessionDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create session spool: %w", err)
	}

	tmp, err := os.CreateTemp(sessionDir, ".staging-*")
	if err != nil {
		return "", fmt.Errorf("failed to spool %q: %w", filename, err)
	}
	_, copyErr := io.Copy(tmp, data)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to spool %q: %w", filename, err)
	}

	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to publish %q: %w", filename, err)
	}
	return storagePath, nil
}

func (s *LocalStorage) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	full, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read spooled file: %w", err)
	}
	return f, nil
}

// Delete removes a spooled file; the session directory goes with its last file
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	full, err := s.resolve(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete spooled file: %w", err)
	}

	entries, err := os.ReadDir(filepath.Dir(full))
	if err == nil && len(entries) == 0 {
		os.Remove(filepath.Dir(full))
	}
	return nil
}
