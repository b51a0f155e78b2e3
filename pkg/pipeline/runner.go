package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/observability"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete validate → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, roots []*tree.Node, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	if err := tree.Validate(roots); err != nil {
		return nil, fmt.Errorf("validate tree: %w", err)
	}

	result := &Result{}

	// Compute the forest hash for cache keys and API responses
	if data, err := marshalForest(roots); err == nil {
		result.TreeHash = cache.Hash(data)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, roots, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = res.Stats.NodeCount
	result.Stats.GapCount = res.Stats.GapCount
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", res.Stats.NodeCount,
		"gaps", res.Stats.GapCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Advisory geometry scan
	if opts.ShouldValidate() {
		validateStart := time.Now()
		observability.Pipeline().OnValidateStart(ctx, res.Stats.NodeCount+res.Stats.GapCount)
		result.Violations = layout.Validate(res.Roots)
		result.Stats.ValidateTime = time.Since(validateStart)
		observability.Pipeline().OnValidateComplete(ctx, len(result.Violations), result.Stats.ValidateTime)

		if len(result.Violations) > 0 {
			r.Logger.Warn("layout has geometry violations",
				"count", len(result.Violations),
				"first", result.Violations[0].Message)
		}
	}

	// Stage 3: Export
	if len(opts.Formats) > 0 {
		exportStart := time.Now()
		artifacts, err := Export(res, roots, opts)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.ExportTime = time.Since(exportStart)

		r.Logger.Info("exported outputs",
			"formats", opts.Formats,
			"duration", result.Stats.ExportTime)
	}

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, roots []*tree.Node, opts Options) (*layout.Result, bool, error) {
	opts.SetLayoutDefaults()
	if err := opts.Config.Validate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	data, err := marshalForest(roots)
	if err != nil {
		return nil, false, fmt.Errorf("serialize forest for cache key: %w", err)
	}
	treeHash := cache.Hash(data)
	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached layout.Result
		err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return &cached, true, nil // Cache hit
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Backend trouble or a corrupt entry; recompute
			r.Logger.Debug("layout cache read failed", "key", cacheKey, "err", err)
			observability.Cache().OnCacheError(ctx, "get", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute layout
	nodeCount := tree.Count(roots)
	observability.Pipeline().OnLayoutStart(ctx, nodeCount)
	buildStart := time.Now()

	res, err := ComputeLayout(roots, opts)

	placed := 0
	if res != nil {
		placed = res.Stats.NodeCount + res.Stats.GapCount
	}
	observability.Pipeline().OnLayoutComplete(ctx, placed, time.Since(buildStart), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			observability.Cache().OnCacheError(ctx, "set", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return res, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, roots []*tree.Node, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, roots, opts)
	return res, err
}

// Invalidate drops the cached layout for the given forest and options.
// The next Layout call recomputes from scratch.
func (r *Runner) Invalidate(ctx context.Context, roots []*tree.Node, opts Options) error {
	opts.SetLayoutDefaults()

	data, err := marshalForest(roots)
	if err != nil {
		return fmt.Errorf("serialize forest for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())
	return r.Cache.Delete(ctx, cacheKey)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// marshalForest produces the canonical forest serialization hashed into
// layout cache keys. Struct field order makes the encoding deterministic for
// identical forests.
func marshalForest(roots []*tree.Node) ([]byte, error) {
	return json.Marshal(roots)
}
