// Package observability lets applications instrument layout runs, cache
// traffic, and the HTTP API without coupling the core packages to any
// metrics or tracing backend.
//
// The model is a registry of small hook interfaces with no-op defaults.
// main registers real implementations once at startup; library code emits
// events through the package-level accessors and never knows whether anyone
// is listening. Because registration happens in main, backends such as
// OpenTelemetry or Prometheus never become dependencies of the libraries
// that emit the events.
//
//	func main() {
//	    observability.SetPipelineHooks(promHooks{})
//	    observability.SetCacheHooks(promHooks{})
//	    // ...
//	}
//
// Emitting an event is a plain method call on the current hooks:
//
//	observability.Pipeline().OnLayoutStart(ctx, nodeCount)
//	res, err := pipeline.ComputeLayout(roots, opts)
//	observability.Pipeline().OnLayoutComplete(ctx, placed, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from layout computation, the geometry
// validator, and hit-testing.
type PipelineHooks interface {
	// OnLayoutStart fires before a layout run. nodeCount is the size of
	// the input forest.
	OnLayoutStart(ctx context.Context, nodeCount int)

	// OnLayoutComplete fires after a layout run, successful or not.
	// placedCount is the number of placed entries in the result, nodes
	// plus gap sectors.
	OnLayoutComplete(ctx context.Context, placedCount int, duration time.Duration, err error)

	// OnValidateStart and OnValidateComplete bracket the advisory
	// geometry scan.
	OnValidateStart(ctx context.Context, placedCount int)
	OnValidateComplete(ctx context.Context, violationCount int, duration time.Duration)

	// OnHitTest fires once per pointer probe; hit reports whether the
	// probe resolved to a node.
	OnHitTest(ctx context.Context, hit bool)
}

// CacheHooks receives events from cache reads and writes.
type CacheHooks interface {
	// OnCacheHit fires when a lookup is served from cache. keyType
	// identifies the kind of entry, e.g. "layout".
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss fires when a lookup finds nothing and the result must
	// be computed.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet fires after a computed result is stored. size is the
	// serialized entry size in bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError fires when the backend fails on a read or write.
	// Such failures are otherwise absorbed; the pipeline recomputes
	// instead of surfacing them.
	OnCacheError(ctx context.Context, op string, err error)
}

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest fires when a request enters the middleware chain.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse fires when a request completes.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnPanic fires when the recoverer catches a handler panic.
	OnPanic(ctx context.Context, method, path string, err error)
}

// reg holds the current hooks. A single lock covers all three slots;
// registration is a startup-time event, reads are the hot path.
var reg = struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	server:   NoopServerHooks{},
}

// SetPipelineHooks installs h as the pipeline hooks. Call once at startup,
// before any layout runs. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.pipeline = h
	reg.mu.Unlock()
}

// SetCacheHooks installs h as the cache hooks. Call once at startup, before
// any cache traffic. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.cache = h
	reg.mu.Unlock()
}

// SetServerHooks installs h as the server hooks. Call once at startup,
// before serving traffic. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h == nil {
		return
	}
	reg.mu.Lock()
	reg.server = h
	reg.mu.Unlock()
}

// Pipeline returns the current pipeline hooks.
func Pipeline() PipelineHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.pipeline
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.cache
}

// Server returns the current server hooks.
func Server() ServerHooks {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.server
}

// Reset restores the no-op defaults. Tests use this to undo registration.
func Reset() {
	reg.mu.Lock()
	reg.pipeline = NoopPipelineHooks{}
	reg.cache = NoopCacheHooks{}
	reg.server = NoopServerHooks{}
	reg.mu.Unlock()
}

// NoopPipelineHooks discards all pipeline events. Embed it to implement
// only the events you care about.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnValidateStart(context.Context, int)                        {}
func (NoopPipelineHooks) OnValidateComplete(context.Context, int, time.Duration)      {}
func (NoopPipelineHooks) OnHitTest(context.Context, bool)                             {}

// NoopCacheHooks discards all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopServerHooks discards all server events.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnPanic(context.Context, string, string, error)                 {}
