// Package repository defines the keyed record store every record kind is
// persisted through. Backends live in sub-packages.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mamadbah2/poultry/internal/identity"
)

// ErrStorage marks failures of the underlying persistence substrate. Backends
// wrap every driver error with it so callers can tell a storage fault apart
// from a missing record, which is never an error.
var ErrStorage = errors.New("storage fault")

// Store is a persistent mapping from identifier to record.
//
// Insert assumes the key is fresh: callers only pass identifiers that were
// just generated. If a key does collide, the new value overwrites the old
// one; that fallback is not a supported use case. Nothing is ever deleted.
//
// Get returns ok=false for an absent key. Values returns every record in the
// backend's native order, which callers must not treat as chronological.
type Store[T any] interface {
	Insert(ctx context.Context, key identity.Identifier, value T) error
	Get(ctx context.Context, key identity.Identifier) (value T, ok bool, err error)
	Values(ctx context.Context) ([]T, error)
}

// Fault wraps a backend error with ErrStorage.
func Fault(op, namespace string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, namespace, err)
}

// Snapshot serializes every record of a store as a JSON array.
func Snapshot[T any](ctx context.Context, store Store[T]) ([]byte, error) {
	values, err := store.Values(ctx)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
