package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TTLLayout is the lifetime of cached layout results. Layout keys are
// content-addressed (tree hash plus engine options), so entries never serve
// stale geometry; the TTL only keeps abandoned trees from accumulating.
const TTLLayout = 7 * 24 * time.Hour

// Cache is the storage interface for memoized layout results.
// Implementations must be safe for concurrent use.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a clean
// miss; errors are reserved for backend failures. Set stores data under key
// for ttl, where zero means no expiration. Delete is a no-op for missing
// keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON reads key from c and unmarshals the entry into v.
// Returns ErrCacheMiss when the key is absent or expired, so callers can
// fall through to recompute. Backend failures are returned as-is.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal cached entry %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and stores it in c under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl)
}
