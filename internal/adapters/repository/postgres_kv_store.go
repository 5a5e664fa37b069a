package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*PostgresKeyValueStore)(nil)

type PostgresKeyValueStore struct {
	db *sqlx.DB
}

func NewPostgresKeyValueStore(db *sqlx.DB) *PostgresKeyValueStore {
	return &PostgresKeyValueStore{db: db}
}

func (r *PostgresKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value string
	err := r.db.GetContext(ctx, &value, r.db.Rebind(`SELECT value FROM kv_entries WHERE key = ?`), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("postgres store: get %s failed: %w", key, err)
	}

	return value, nil
}

func (r *PostgresKeyValueStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (:key, :value, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"key":   key,
		"value": value,
	})
	if err != nil {
		return fmt.Errorf("postgres store: set %s failed: %w", key, err)
	}

	return nil
}

func (r *PostgresKeyValueStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
