package sheets

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
)

// Store keeps one tab per namespace with rows of [id, json payload].
// Rows are only ever appended; when an id appears twice the last row wins.
type Store[T any] struct {
	repo      Repository
	namespace string
	logger    *zap.Logger
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

// NewStore binds a typed store to the tab named namespace.
func NewStore[T any](repo Repository, namespace string, logger *zap.Logger) *Store[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T]{repo: repo, namespace: namespace, logger: logger}
}

// Insert appends a row for the record.
func (s *Store[T]) Insert(ctx context.Context, key identity.Identifier, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", s.namespace, err)
	}
	if err := s.repo.AppendRecord(ctx, s.namespace, key.String(), string(payload)); err != nil {
		return repository.Fault("insert into", s.namespace, err)
	}
	return nil
}

// Get scans the tab for key.
func (s *Store[T]) Get(ctx context.Context, key identity.Identifier) (T, bool, error) {
	var zero T

	rows, err := s.repo.ReadRecords(ctx, s.namespace)
	if err != nil {
		return zero, false, repository.Fault("get from", s.namespace, err)
	}

	want := key.String()
	for i := len(rows) - 1; i >= 0; i-- {
		id, payload, ok := splitRow(rows[i])
		if !ok || id != want {
			continue
		}
		var value T
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return zero, false, repository.Fault("decode", s.namespace, err)
		}
		return value, true, nil
	}
	return zero, false, nil
}

// Values returns one record per id in first-appearance order. A row whose
// payload does not decode fails the whole listing.
func (s *Store[T]) Values(ctx context.Context) ([]T, error) {
	rows, err := s.repo.ReadRecords(ctx, s.namespace)
	if err != nil {
		return nil, repository.Fault("list", s.namespace, err)
	}

	index := make(map[string]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		id, payload, ok := splitRow(row)
		if !ok {
			continue
		}

		var value T
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			s.logger.Warn("row with invalid payload", zap.String("namespace", s.namespace), zap.String("id", id), zap.Error(err))
			return nil, repository.Fault("decode", s.namespace, err)
		}

		if pos, seen := index[id]; seen {
			out[pos] = value
			continue
		}
		index[id] = len(out)
		out = append(out, value)
	}
	return out, nil
}

func splitRow(row []interface{}) (string, string, bool) {
	if len(row) < 2 {
		return "", "", false
	}
	id := fmt.Sprint(row[0])
	if _, err := identity.ParseIdentifier(id); err != nil {
		// header rows and hand-edited cells
		return "", "", false
	}
	return id, fmt.Sprint(row[1]), true
}
