package cache

import "errors"

// ErrCacheMiss is returned by [GetJSON] when an entry is not found in cache.
// A miss is the normal cold-start path, not a failure: callers recompute and
// store the fresh result.
var ErrCacheMiss = errors.New("cache miss")
