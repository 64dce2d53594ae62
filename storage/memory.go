package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage keeps staged files in process memory
type MemoryStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

// Put buffers a staged file
func (s *MemoryStorage) Put(ctx context.Context, scope, fileID uuid.UUID, filename string, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	storagePath := generateStoragePath(scope, fileID, filename)

	s.mu.Lock()
	s.files[storagePath] = b
	s.mu.Unlock()

	return storagePath, nil
}

// Open returns a reader over a buffered file
func (s *MemoryStorage) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	s.mu.RLock()
	b, ok := s.files[storagePath]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Delete drops a buffered file
func (s *MemoryStorage) Delete(ctx context.Context, storagePath string) error {
	s.mu.Lock()
	delete(s.files, storagePath)
	s.mu.Unlock()
	return nil
}

// Len reports how many files are buffered
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
