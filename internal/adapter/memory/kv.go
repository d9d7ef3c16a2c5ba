// Package memory provides an in-process key-value store with TTL
// eviction, used in tests and single-node deployments without Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"vista-ads/internal/core/port"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store implements port.KeyValueStore over a mutex-guarded map. Expiry
// is enforced lazily on read, plus opportunistically on write so the
// map does not grow without bound under a write-only load.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// New returns a wall-clock store.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock injects the clock, for expiry tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{items: make(map[string]entry), now: now}
}

func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
		}
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.items[key] = entry{value: v, expiresAt: now.Add(ttl)}
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(e.expiresAt) {
		return nil, port.ErrNotFound
	}
	return e.value, nil
}

var _ port.KeyValueStore = (*Store)(nil)
