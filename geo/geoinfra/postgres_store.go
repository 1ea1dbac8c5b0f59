package geoinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/compasshq/compass/geo"
)

// PostgresStore implements the durable CacheStore tier on Postgres, for
// deployments that have no Redis. Expired rows are filtered on read and
// reaped opportunistically on write.
type PostgresStore struct {
	db    *sqlx.DB
	table string
}

// NewPostgresStore creates a Postgres-backed cache store using the geo_cache table.
func NewPostgresStore(db *sqlx.DB) geo.CacheStore {
	return &PostgresStore{db: db, table: "geo_cache"}
}

// Get returns the value for key, or geo.ErrCacheMiss when absent or expired.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1 AND expires_at > NOW()`, s.table)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, geo.ErrCacheMiss
		}
		return nil, fmt.Errorf("postgres cache get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts a value with a TTL.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, expires_at)
		VALUES ($1, $2, NOW() + $3::interval)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`, s.table)
	interval := fmt.Sprintf("%d seconds", int(ttl.Seconds()))
	if _, err := s.db.ExecContext(ctx, query, key, value, interval); err != nil {
		return fmt.Errorf("postgres cache set %s: %w", key, err)
	}

	// Best-effort reaping of expired rows; failure is not an error.
	reap := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= NOW()`, s.table)
	_, _ = s.db.ExecContext(ctx, reap)
	return nil
}

// Delete removes a key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("postgres cache delete %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
