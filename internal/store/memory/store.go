package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/favtube/internal/favorites"
)

// Store keeps the favorites blob in process memory.
// Used when no durable backend is configured, and by tests.
type Store struct {
	mu        sync.RWMutex
	blob      []byte
	has       bool
	lastSave  time.Time
	saveCount int
}

// NewStore creates an empty memory store
func NewStore() *Store {
	return &Store{}
}

// Name implements favorites.Persister
func (s *Store) Name() string { return "memory" }

// Load returns a copy of the last saved blob
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has {
		return nil, favorites.ErrBlobNotFound
	}
	return append([]byte(nil), s.blob...), nil
}

// Save replaces the stored blob
func (s *Store) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = append([]byte(nil), blob...)
	s.has = true
	s.lastSave = time.Now()
	s.saveCount++
	return nil
}

// Reset forgets the stored blob
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = nil
	s.has = false
}

// Stats returns the number of saves and the time of the last one
func (s *Store) Stats() (saves int, lastSave time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveCount, s.lastSave
}
