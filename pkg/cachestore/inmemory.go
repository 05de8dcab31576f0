package cachestore

import (
	"context"
	"fmt"
	"sync"
)

// InMemory is a generic, thread-safe, in-memory store. It is used in tests
// and local development where persistence across restarts is not needed.
type InMemory[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewInMemory creates a new in-memory store.
func NewInMemory[K comparable, V any]() *InMemory[K, V] {
	return &InMemory[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves the value stored under key.
func (s *InMemory[K, V]) Get(_ context.Context, key K) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("in-memory get for '%v': %w", key, ErrNotFound)
	}
	return value, nil
}

// Put stores the value under key, overwriting any prior value.
func (s *InMemory[K, V]) Put(_ context.Context, key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Len reports the number of stored entries.
func (s *InMemory[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
