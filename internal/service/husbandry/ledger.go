package husbandry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/metrics"
	"github.com/mamadbah2/poultry/internal/repository"
)

// ledger is the create/get/list plumbing shared by every record kind.
type ledger[T any] struct {
	kind    models.Kind
	store   repository.Store[T]
	ids     identity.Generator
	clock   *monotonicClock
	metrics metrics.Recorder
	logger  *zap.Logger
}

// insert stores a freshly built record. Storage faults are returned wrapped,
// never retried.
func (l *ledger[T]) insert(ctx context.Context, event models.EventType, id identity.Identifier, record T) (T, error) {
	if err := l.store.Insert(ctx, id, record); err != nil {
		l.metrics.RecordFailed(string(l.kind), string(event))
		l.logger.Error("record insert failed",
			zap.String("kind", string(l.kind)),
			zap.String("event", string(event)),
			zap.Stringer("id", id),
			zap.Error(err))
		var zero T
		return zero, fmt.Errorf("record %s %s: %w", l.kind, event, err)
	}

	l.metrics.RecordCreated(string(l.kind), string(event))
	l.logger.Debug("record inserted",
		zap.String("kind", string(l.kind)),
		zap.String("event", string(event)),
		zap.Stringer("id", id))
	return record, nil
}

func (l *ledger[T]) get(ctx context.Context, id identity.Identifier) (T, bool, error) {
	rec, ok, err := l.store.Get(ctx, id)
	if err != nil {
		return rec, false, fmt.Errorf("get %s: %w", l.kind, err)
	}
	return rec, ok, nil
}

func (l *ledger[T]) list(ctx context.Context) ([]T, error) {
	recs, err := l.store.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.kind, err)
	}
	return recs, nil
}

// Snapshot serializes every record of the kind.
func (l *ledger[T]) Snapshot(ctx context.Context) ([]byte, error) {
	return repository.Snapshot(ctx, l.store)
}

// Kind names the namespace the ledger writes to.
func (l *ledger[T]) Kind() models.Kind {
	return l.kind
}
