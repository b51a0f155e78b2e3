package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything. It backs --refresh
// style runs where memoization must be bypassed, and tests that want the
// cold path every time.
//
// Every method is a miss or a successful no-op; NullCache never errors.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache { return &NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
