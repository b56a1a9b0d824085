package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/dmitrijs2005/docscan/internal/dbx"
	"github.com/dmitrijs2005/docscan/internal/kvstore/sqlitemigrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLStore implements Store over a blobs table. The query set differs per
// dialect (placeholders, upsert syntax), so constructors supply it.
type SQLStore struct {
	db      *sql.DB
	closer  func() error
	queries sqlQueries
}

type sqlQueries struct {
	get    string
	upsert string
	delete string
}

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM blobs WHERE key = ?`,
	upsert: `INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: `DELETE FROM blobs WHERE key = ?`,
}

// gooseUpContext is a seam for testing migration failures.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// OpenSQLite opens (creating if needed) a SQLite database at dsn and applies
// the embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	goose.SetBaseFS(sqlitemigrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLStore{db: db, closer: db.Close, queries: sqliteQueries}, nil
}

// NewSQLiteStore wraps an already-initialized SQLite handle. Used by tests.
func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, queries: sqliteQueries}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, s.queries.get, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %s: %w", key, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("selecting blob %s: %w", key, err)
	}
	return value, nil
}

// Set writes the blob inside a transaction so a whole-blob replace is never
// observed half-applied by a concurrent reader.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, s.queries.upsert, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("upserting blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.queries.delete, key); err != nil {
		return fmt.Errorf("deleting blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
