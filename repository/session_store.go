package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionStore keeps page-scoped state for a limited time
type SessionStore[T any] interface {
	// Get returns ErrNotFound for unknown or expired ids
	Get(ctx context.Context, id uuid.UUID) (*T, error)

	// Save stores v and restarts its expiry
	Save(ctx context.Context, id uuid.UUID, v *T) error

	// Delete is a no-op for unknown ids
	Delete(ctx context.Context, id uuid.UUID) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Values are stored encoded so
// callers never share a pointer with the store.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]memoryEntry
}

// NewMemoryStore creates a store whose entries expire ttl after their last save
func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]memoryEntry),
	}
}

// Get retrieves a session by ID
func (s *MemoryStore[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}

	var v T
	if err := json.Unmarshal(entry.data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Save stores a session
func (s *MemoryStore[T]) Save(ctx context.Context, id uuid.UUID, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpired()
	s.entries[id] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Delete removes a session
func (s *MemoryStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Len reports the number of live entries
func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpired()
	return len(s.entries)
}

// purgeExpired must be called with mu held
func (s *MemoryStore[T]) purgeExpired() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// RedisStore keeps sessions in Redis under prefix with a TTL
type RedisStore[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore[T any](client *redis.Client, prefix string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore[T]) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

// Get retrieves a session by ID
func (s *RedisStore[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Save stores a session
func (s *RedisStore[T]) Save(ctx context.Context, id uuid.UUID, v *T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(id), b, s.ttl).Err()
}

// Delete removes a session
func (s *RedisStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
