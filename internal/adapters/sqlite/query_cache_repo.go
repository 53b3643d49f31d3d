// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// QueryCacheRepository implements secondary.QueryCache with SQLite.
type QueryCacheRepository struct {
	db *sql.DB
}

// NewQueryCacheRepository creates a new SQLite query cache.
func NewQueryCacheRepository(db *sql.DB) *QueryCacheRepository {
	return &QueryCacheRepository{db: db}
}

// Get returns the cached result for key.
func (r *QueryCacheRepository) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM query_cache WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached query: %w", err)
	}
	return json.RawMessage(data), true, nil
}

// Put stores data under key, replacing any previous entry.
func (r *QueryCacheRepository) Put(ctx context.Context, key, operation string, data json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO query_cache (key, operation, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET operation = excluded.operation, data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		key, operation, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to cache query %s: %w", operation, err)
	}
	return nil
}

// Clear removes every cached entry.
func (r *QueryCacheRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM query_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear query cache: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}
	return n, nil
}

// Ensure QueryCacheRepository implements the interface
var _ secondary.QueryCache = (*QueryCacheRepository)(nil)
