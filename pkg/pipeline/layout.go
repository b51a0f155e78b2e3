package pipeline

import (
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout computes a sunburst layout for a forest without caching.
// This is the unified entry point below Runner: it resolves the configured
// weight model and parallelism and runs the engine. Callers that want cache
// semantics should use [Runner.Layout] instead.
func ComputeLayout(roots []*tree.Node, opts Options) (*layout.Result, error) {
	opts.SetLayoutDefaults()

	return layout.Build(roots, opts.Config,
		layout.WithWeightFunc(opts.WeightFunc()),
		layout.WithParallelism(opts.Parallelism))
}
