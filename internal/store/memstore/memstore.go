// Package memstore provides an in-memory document reader for testing.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/textshelf/shelf/internal/store"
)

// Compile-time check that Store implements store.Reader.
var _ store.Reader = (*Store)(nil)

// Store is an in-memory document reader for testing.
type Store struct {
	mu    sync.RWMutex
	docs  map[int][]byte
	delay time.Duration
	reads int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs: make(map[int][]byte),
	}
}

// SetDocument sets the content for a document (for test setup).
// The data is copied to prevent caller mutations from affecting the store.
func (s *Store) SetDocument(id int, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(content))
	copy(copied, content)
	s.docs[id] = copied
}

// SetDelay sets a per-read delay, for exercising read-time accounting.
func (s *Store) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// ReadDocument reads a document from memory.
func (s *Store) ReadDocument(ctx context.Context, id int) ([]byte, error) {
	s.mu.Lock()
	s.reads++
	delay := s.delay
	content, ok := s.docs[id]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if !ok {
		return nil, store.ErrNotFound
	}
	return content, nil
}

// Reads returns the number of ReadDocument calls (for asserting that
// cache hits never reach the backing store).
func (s *Store) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
