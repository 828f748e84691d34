package bundle

import (
	"context"
	"sync"
)

// Store serves the current bundle and supports operator-triggered
// rebuilds. Each generation is a write-once Cache; a rebuild primes a
// fresh cache off to the side and swaps it in only on success, so
// readers never see a half-built or broken bundle.
type Store struct {
	load LoadFunc

	mu      sync.RWMutex
	current *Cache
}

// NewStore creates a store whose generations all load through load.
func NewStore(load LoadFunc) *Store {
	return &Store{
		load:    load,
		current: NewCache(load),
	}
}

// Get returns the current bundle, computing it on first call.
func (s *Store) Get(ctx context.Context) (*Bundle, error) {
	s.mu.RLock()
	cache := s.current
	s.mu.RUnlock()
	return cache.Get(ctx)
}

// Rebuild loads a fresh bundle and swaps it in. On failure the
// previous generation keeps serving.
func (s *Store) Rebuild(ctx context.Context) (*Bundle, error) {
	fresh := NewCache(s.load)
	b, err := fresh.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = fresh
	s.mu.Unlock()
	return b, nil
}
