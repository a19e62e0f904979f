// AngelaMos | 2026
// postgres.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vayutech/vayu-backend/internal/core"
)

// PostgresStore maps the blob store onto a single kv_entries table. Each
// Set is one upsert, so whole-collection writes stay atomic per key and
// the last-write-wins semantics of the other backends carry over.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table. Called once at bootstrap.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure kv schema: %w: %w", core.ErrStorage, err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var raw []byte
	err := s.db.GetContext(ctx, &raw, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w: %w", key, core.ErrStorage, err)
	}

	return raw, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("kv set %q: %w: %w", key, core.ErrStorage, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("kv delete %q: %w: %w", key, core.ErrStorage, err)
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres store ping: %w", err)
	}
	return nil
}
