// ABOUTME: In-memory scroll position store, the default backend
// ABOUTME: Process-local map guarded by a mutex; cleared on Close

package memory

import (
	"context"
	"sync"

	"docview-engine/core/domain"
)

// Store implements the ScrollPositionStore interface in process memory.
type Store struct {
	mu      sync.RWMutex
	offsets map[domain.DocumentKey]float64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{offsets: make(map[domain.DocumentKey]float64)}
}

// Save unconditionally overwrites the offset for a document.
func (s *Store) Save(ctx context.Context, key domain.DocumentKey, offset float64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[key] = offset
	return nil
}

// Get returns the saved offset for a document.
func (s *Store) Get(ctx context.Context, key domain.DocumentKey) (float64, bool, error) {
	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	offset, ok := s.offsets[key]
	return offset, ok, nil
}

// Delete removes the entry for a document.
func (s *Store) Delete(ctx context.Context, key domain.DocumentKey) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offsets, key)
	return nil
}

// Close drops all entries.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets = make(map[domain.DocumentKey]float64)
	return nil
}
