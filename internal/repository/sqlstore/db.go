// Package sqlstore persists records as JSON payloads in a single SQL table,
// keyed by (namespace, id). SQLite and Postgres share the same layout.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Dialect captures the few statements that differ between engines.
type Dialect struct {
	Name        string
	createTable string
	placeholder func(n int) string
}

var (
	// SQLite uses ? placeholders and an AUTOINCREMENT sequence column.
	SQLite = Dialect{
		Name: "sqlite",
		createTable: `CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			namespace TEXT NOT NULL,
			id TEXT NOT NULL,
			payload BLOB NOT NULL,
			UNIQUE(namespace, id)
		)`,
		placeholder: func(int) string { return "?" },
	}

	// Postgres uses numbered placeholders and JSONB payloads.
	Postgres = Dialect{
		Name: "postgres",
		createTable: `CREATE TABLE IF NOT EXISTS records (
			seq BIGSERIAL,
			namespace TEXT NOT NULL,
			id TEXT NOT NULL,
			payload JSONB NOT NULL,
			PRIMARY KEY (namespace, id)
		)`,
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// rebind rewrites ? placeholders for the dialect.
func (d Dialect) rebind(query string) string {
	if d.Name == SQLite.Name {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(d.placeholder(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// DB is an opened database plus the dialect used to talk to it.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		path = "poultry.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers, which SQLite needs anyway.
	db.SetMaxOpenConns(1)

	return initialize(ctx, db, SQLite)
}

// OpenPostgres opens a pooled connection to Postgres using pgx.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn must not be empty")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return initialize(ctx, db, Postgres)
}

func initialize(ctx context.Context, db *sql.DB, dialect Dialect) (*DB, error) {
	if _, err := db.ExecContext(ctx, dialect.createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &DB{sql: db, dialect: dialect}, nil
}

// Close releases the connection pool.
func (d *DB) Close() error { return d.sql.Close() }
