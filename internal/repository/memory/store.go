// Package memory keeps records in process memory. It backs tests and the
// "memory" driver used for local development.
package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
)

// Store is a map with an insertion-order index.
type Store[T any] struct {
	mu    sync.RWMutex
	byID  map[identity.Identifier]T
	order []identity.Identifier
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

// NewStore builds an empty in-memory store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{byID: make(map[identity.Identifier]T)}
}

// Insert adds the record, overwriting in place on key collision.
func (s *Store[T]) Insert(_ context.Context, key identity.Identifier, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[key]; !exists {
		s.order = append(s.order, key)
	}
	s.byID[key] = value
	return nil
}

// Get returns the record stored under key.
func (s *Store[T]) Get(_ context.Context, key identity.Identifier) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byID[key]
	return v, ok, nil
}

// Values returns records in insertion order.
func (s *Store[T]) Values(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Len reports how many keys are stored.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
