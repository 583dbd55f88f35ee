package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
)

// Store is a repository.Store over one namespace of the records table.
type Store[T any] struct {
	db        *DB
	namespace string

	insertSQL string
	getSQL    string
	valuesSQL string
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

// NewStore binds a typed store to namespace.
func NewStore[T any](db *DB, namespace string) *Store[T] {
	d := db.dialect
	return &Store[T]{
		db:        db,
		namespace: namespace,
		insertSQL: d.rebind(`INSERT INTO records(namespace, id, payload) VALUES(?, ?, ?)
			ON CONFLICT(namespace, id) DO UPDATE SET payload = excluded.payload`),
		getSQL:    d.rebind(`SELECT payload FROM records WHERE namespace = ? AND id = ?`),
		valuesSQL: d.rebind(`SELECT payload FROM records WHERE namespace = ? ORDER BY seq`),
	}
}

// Insert upserts the JSON payload under key.
func (s *Store[T]) Insert(ctx context.Context, key identity.Identifier, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", s.namespace, err)
	}

	arg := any(payload)
	if s.db.dialect.Name == Postgres.Name {
		// pgx maps []byte to bytea; JSONB wants text.
		arg = string(payload)
	}

	if _, err := s.db.sql.ExecContext(ctx, s.insertSQL, s.namespace, key.String(), arg); err != nil {
		return repository.Fault("insert into", s.namespace, err)
	}
	return nil
}

// Get loads the record stored under key.
func (s *Store[T]) Get(ctx context.Context, key identity.Identifier) (T, bool, error) {
	var zero T
	var payload []byte

	err := s.db.sql.QueryRowContext(ctx, s.getSQL, s.namespace, key.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, repository.Fault("get from", s.namespace, err)
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return zero, false, repository.Fault("decode", s.namespace, err)
	}
	return value, true, nil
}

// Values returns records in insertion order.
func (s *Store[T]) Values(ctx context.Context) ([]T, error) {
	rows, err := s.db.sql.QueryContext(ctx, s.valuesSQL, s.namespace)
	if err != nil {
		return nil, repository.Fault("list", s.namespace, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]T, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, repository.Fault("scan", s.namespace, err)
		}
		var value T
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, repository.Fault("decode", s.namespace, err)
		}
		out = append(out, value)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Fault("list", s.namespace, err)
	}
	return out, nil
}
