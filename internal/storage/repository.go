package storage

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool used by CacheRepository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CacheRepository persists cache entries in the tour_cache table. It satisfies cache.Store,
// so cached tours survive restarts until the next daily eviction.
type CacheRepository struct {
	q    Querier
	ping func(ctx context.Context) error
}

// NewCacheRepository constructs a CacheRepository backed by the given pool.
func NewCacheRepository(pool *pgxpool.Pool) *CacheRepository {
	return &CacheRepository{q: pool, ping: pool.Ping}
}

// NewCacheRepositoryWithQuerier constructs a CacheRepository with a custom Querier (for tests).
func NewCacheRepositoryWithQuerier(q Querier) *CacheRepository {
	return &CacheRepository{q: q}
}

// Get decodes the stored payload into dst.
// Returns false, nil when no row exists for namespace and key.
func (r *CacheRepository) Get(ctx context.Context, namespace, key string, dst any) (bool, error) {
	const q = `
		SELECT payload
		FROM tour_cache
		WHERE namespace = $1
		AND cache_key = $2
	`

	var payload []byte
	if err := r.q.QueryRow(ctx, q, namespace, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("querying cache entry %s/%s: %w", namespace, key, err)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("unmarshaling cache entry %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

// Set inserts or replaces the entry. A nil value is a no-op.
func (r *CacheRepository) Set(ctx context.Context, namespace, key string, value any) error {
	if value == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache entry %s/%s: %w", namespace, key, err)
	}

	const q = `
		INSERT INTO tour_cache (namespace, cache_key, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, cache_key) DO UPDATE
		SET payload    = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.q.Exec(ctx, q, namespace, key, payload); err != nil {
		return fmt.Errorf("upserting cache entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

// EvictAll deletes every row in namespace.
func (r *CacheRepository) EvictAll(ctx context.Context, namespace string) error {
	const q = `DELETE FROM tour_cache WHERE namespace = $1`

	if _, err := r.q.Exec(ctx, q, namespace); err != nil {
		return fmt.Errorf("evicting namespace %s: %w", namespace, err)
	}
	return nil
}

// Ping checks database connectivity. Repositories built from a bare Querier report healthy.
func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}
