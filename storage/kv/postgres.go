package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kylycht/coinboard/storage"
)

const defaultTable = "kv_store"

type PostgresKV struct {
	dbConn *sql.DB // underlying persistence connection
	table  string  // quoted table name
}

func NewPostgres(dbConn *sql.DB, table string) *PostgresKV {
	if table == "" {
		table = defaultTable
	}

	return &PostgresKV{
		dbConn: dbConn,
		table:  pq.QuoteIdentifier(table),
	}
}

// Migrate creates the key-value table when it is missing.
func (p *PostgresKV) Migrate(ctx context.Context) error {
	migrateQuery := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				key        TEXT PRIMARY KEY,
				value      BYTEA NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, p.table)

	if _, err := p.dbConn.ExecContext(ctx, migrateQuery); err != nil {
		return fmt.Errorf("unable to migrate %s: %w", p.table, err)
	}

	return nil
}

// Get implements storage.KV.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	getQuery := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table)

	var value []byte
	err := p.dbConn.QueryRowContext(ctx, getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}

	return value, err
}

// Set implements storage.KV.
func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	setQuery := fmt.Sprintf(`INSERT INTO %s (key, value, updated_at)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (key) DO UPDATE
				 SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, p.table)

	_, err := p.dbConn.ExecContext(ctx, setQuery, key, value, time.Now().UTC())

	return err
}

// Close implements storage.KV.
func (p *PostgresKV) Close(context.Context) error {
	return p.dbConn.Close()
}
