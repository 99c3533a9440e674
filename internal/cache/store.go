// File path: internal/cache/store.go

// Package cache memoizes generated responses for the process lifetime.
package cache

import "sync"

// Store is a concurrency-safe memo table. Entries never expire and, once
// present, are never replaced.
type Store[V any] struct {
	mu   sync.RWMutex
	data map[string]V
}

func New[V any]() *Store[V] {
	return &Store[V]{data: make(map[string]V)}
}

func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	return v, true
}

// SetIfAbsent stores value under key unless key already exists, and returns
// the value that ends up cached.
func (s *Store[V]) SetIfAbsent(key string, value V) V {
	if s == nil {
		return value
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[key]; ok {
		return existing
	}
	s.data[key] = value
	return value
}

func (s *Store[V]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
