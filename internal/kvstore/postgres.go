package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docscan/internal/kvstore/pgmigrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = sqlQueries{
	get: `SELECT value FROM blobs WHERE key = $1`,
	upsert: `INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = now()`,
	delete: `DELETE FROM blobs WHERE key = $1`,
}

// OpenPostgres connects to PostgreSQL via pgx and applies the embedded
// migrations. Intended for installs that keep the scan library on a shared
// database instead of on-device files.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	goose.SetBaseFS(pgmigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLStore{db: db, closer: db.Close, queries: postgresQueries}, nil
}

// NewPostgresStore wraps an already-initialized PostgreSQL handle.
// Used by tests.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, queries: postgresQueries}
}
