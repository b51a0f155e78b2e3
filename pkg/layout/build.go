package layout

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// DiagnosticCode classifies a non-fatal layout condition.
type DiagnosticCode string

const (
	// DiagDepthTruncated reports children dropped because their depth
	// exceeds the configured maximum.
	DiagDepthTruncated DiagnosticCode = "DEPTH_TRUNCATED"

	// DiagNodesTruncated reports a sibling group dropped because placing it
	// would exceed the configured node budget.
	DiagNodesTruncated DiagnosticCode = "NODES_TRUNCATED"

	// DiagFloorAngle reports a sibling group whose reserved gaps exceeded
	// the available range: every sibling was assigned the minimum floor
	// angle instead and gaps were dropped for that group. The resulting
	// group no longer tiles its parent exactly; [Validate] flags it.
	DiagFloorAngle DiagnosticCode = "FLOOR_ANGLE"
)

// Diagnostic describes one non-fatal condition encountered during a layout
// pass. Diagnostics never abort a layout: a partial, renderable result is
// preferred over no result.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	NodeID  string         `json:"nodeId,omitempty"`
	Message string         `json:"message"`
}

// Stats summarizes one layout pass.
type Stats struct {
	NodeCount int `json:"nodeCount"` // real sectors placed
	GapCount  int `json:"gapCount"`  // synthetic gap sectors
	Depth     int `json:"depth"`     // deepest placed level
}

// Result is the output of [Build]: the placed forest plus any diagnostics
// collected along the way.
type Result struct {
	Roots       []*PlacedNode `json:"roots"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Stats       Stats         `json:"stats"`
}

type buildOptions struct {
	weigh       WeightFunc
	parallelism int
}

// Option adjusts how [Build] runs without being part of the wire-level
// [Config].
type Option func(*buildOptions)

// WithWeightFunc sets the weight model. The default is [ValueWeight].
func WithWeightFunc(fn WeightFunc) Option {
	return func(o *buildOptions) {
		if fn != nil {
			o.weigh = fn
		}
	}
}

// WithParallelism lays out root subtrees on up to n goroutines. Sibling
// subtrees are independent once the root partition is fixed, so the result
// is identical to the sequential one. Values below 2 keep the pass
// sequential.
func WithParallelism(n int) Option {
	return func(o *buildOptions) { o.parallelism = n }
}

// Build computes the sunburst layout for a forest. Roots divide the full
// circle [0, 2π) proportionally to their weights, each node's children
// subdivide its angular window one ring further out, and gap sectors are
// interleaved at every level where the configuration applies.
//
// The configuration is validated first (zero fields are defaulted) and the
// forest is rejected if structurally unsound, including cyclic child
// references. After that the pass never fails: depth and node budget
// overruns truncate subtrees, and impossible gap configurations fall back to
// floor angles, all reported in Result.Diagnostics.
//
// Build does not mutate the input forest and allocates a fresh placed forest
// on every call.
func Build(roots []*tree.Node, cfg Config, opts ...Option) (*Result, error) {
	bo := buildOptions{weigh: ValueWeight, parallelism: 1}
	for _, opt := range opts {
		opt(&bo)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tree.Validate(roots); err != nil {
		return nil, fmt.Errorf("validate tree: %w", err)
	}

	pr := &pruner{cfg: cfg, ids: make(map[string]struct{})}
	pruned := pr.pruneLevel(roots, 0, "")

	res := &Result{Diagnostics: pr.diags, Stats: Stats{NodeCount: pr.count}}
	if len(pruned) == 0 {
		return res, nil
	}

	weights := make([]float64, len(pruned))
	for i, r := range pruned {
		weights[i] = sanitizeWeight(bo.weigh(r))
	}

	gap := 0.0
	if cfg.gapsApply(len(pruned)) {
		gap = cfg.GapAngle()
	}
	intervals, err := Partition(weights, 0, twoPi, gap)
	floored := err != nil
	if floored {
		intervals = floorPartition(len(pruned), 0, cfg.MinSectorAngle)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    DiagFloorAngle,
			Message: fmt.Sprintf("root gaps exceed the full circle for %d roots: assigned floor angle %v to each", len(pruned), cfg.MinSectorAngle),
		})
	}

	outs := make([]*rootResult, len(pruned))
	if bo.parallelism > 1 && len(pruned) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(bo.parallelism)
		for i := range pruned {
			i := i
			g.Go(func() error {
				outs[i] = layoutRoot(pruned[i], intervals[i], cfg, bo.weigh, pr.ids)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range pruned {
			outs[i] = layoutRoot(pruned[i], intervals[i], cfg, bo.weigh, pr.ids)
		}
	}

	placed := make([]*PlacedNode, len(outs))
	for i, out := range outs {
		placed[i] = out.node
		res.Diagnostics = append(res.Diagnostics, out.diags...)
		res.Stats.GapCount += out.gaps
		if out.depth > res.Stats.Depth {
			res.Stats.Depth = out.depth
		}
	}

	if gap > 0 && !floored {
		inner, outer := ringFor(0, cfg.MaxDepth, cfg.InnerRadiusRatio, cfg.OuterRadiusRatio)
		before := len(placed)
		placed = spliceGaps(rootGapKey, placed, 0, inner, outer, pr.ids)
		res.Stats.GapCount += len(placed) - before
	}

	res.Roots = placed
	return res, nil
}

// pruner applies the depth and node budgets ahead of the geometric pass.
// Running it first keeps truncation decisions identical whether the
// geometry is computed sequentially or in parallel, and collects the real
// node IDs that synthetic gap IDs must avoid.
type pruner struct {
	cfg   Config
	count int
	ids   map[string]struct{}
	diags []Diagnostic
}

// pruneLevel admits or drops one sibling group and recurses. Admission is
// all-or-nothing per group: dropping part of a group would silently distort
// the surviving siblings' proportions, while dropping the whole group keeps
// the parent renderable and honest.
func (pr *pruner) pruneLevel(nodes []*tree.Node, depth int, parentID string) []*tree.Node {
	real := make([]*tree.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			real = append(real, n)
		}
	}
	if len(real) == 0 {
		return nil
	}

	if depth > pr.cfg.MaxDepth {
		pr.diags = append(pr.diags, Diagnostic{
			Code:    DiagDepthTruncated,
			NodeID:  parentID,
			Message: fmt.Sprintf("children beyond depth %d dropped", pr.cfg.MaxDepth),
		})
		return nil
	}
	if pr.count+len(real) > pr.cfg.MaxNodes {
		pr.diags = append(pr.diags, Diagnostic{
			Code:    DiagNodesTruncated,
			NodeID:  parentID,
			Message: fmt.Sprintf("node budget %d reached: %d children dropped", pr.cfg.MaxNodes, len(real)),
		})
		return nil
	}
	pr.count += len(real)

	out := make([]*tree.Node, len(real))
	for i, n := range real {
		cp := *n
		pr.ids[cp.ID] = struct{}{}
		cp.Children = pr.pruneLevel(n.Children, depth+1, n.ID)
		out[i] = &cp
	}
	return out
}

// rootResult carries one root subtree's output back to the merge step, so
// parallel workers never share mutable state.
type rootResult struct {
	node  *PlacedNode
	diags []Diagnostic
	gaps  int
	depth int
}

func layoutRoot(n *tree.Node, iv Interval, cfg Config, weigh WeightFunc, realIDs map[string]struct{}) *rootResult {
	out := &rootResult{}
	out.node = out.layoutNode(n, iv, 0, cfg, weigh, realIDs)
	return out
}

func (out *rootResult) layoutNode(n *tree.Node, iv Interval, depth int, cfg Config, weigh WeightFunc, realIDs map[string]struct{}) *PlacedNode {
	inner, outer := ringFor(depth, cfg.MaxDepth, cfg.InnerRadiusRatio, cfg.OuterRadiusRatio)
	p := &PlacedNode{
		ID:          n.ID,
		Name:        n.Name,
		Value:       n.Value,
		Color:       n.Color,
		StartAngle:  iv.Start,
		AngleRange:  iv.Range,
		InnerRadius: inner,
		OuterRadius: outer,
		Depth:       depth,
	}
	if depth > out.depth {
		out.depth = depth
	}

	kids := n.Children
	if len(kids) == 0 {
		return p
	}

	weights := make([]float64, len(kids))
	for i, c := range kids {
		weights[i] = sanitizeWeight(weigh(c))
	}

	gap := 0.0
	if cfg.gapsApply(len(kids)) {
		gap = cfg.GapAngle()
	}
	intervals, err := Partition(weights, iv.Start, iv.Range, gap)
	floored := err != nil
	if floored {
		intervals = floorPartition(len(kids), iv.Start, cfg.MinSectorAngle)
		out.diags = append(out.diags, Diagnostic{
			Code:    DiagFloorAngle,
			NodeID:  n.ID,
			Message: fmt.Sprintf("gaps exceed range %v for %d children: assigned floor angle %v to each", iv.Range, len(kids), cfg.MinSectorAngle),
		})
	}

	children := make([]*PlacedNode, len(kids))
	for i, c := range kids {
		children[i] = out.layoutNode(c, intervals[i], depth+1, cfg, weigh, realIDs)
	}

	if gap > 0 && !floored {
		cInner, cOuter := ringFor(depth+1, cfg.MaxDepth, cfg.InnerRadiusRatio, cfg.OuterRadiusRatio)
		before := len(children)
		children = spliceGaps(n.ID, children, depth+1, cInner, cOuter, realIDs)
		out.gaps += len(children) - before
	}

	p.Children = children
	return p
}
