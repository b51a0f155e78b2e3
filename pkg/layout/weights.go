package layout

import (
	"math"

	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// WeightFunc computes the sector weight of a node. Weights size sibling
// sectors relative to each other; only the ratio within one sibling group
// matters. Implementations must be pure and should return a positive value;
// [Build] clamps non-positive or non-finite results to 1 so a misbehaving
// model degrades to even spreading instead of breaking the layout.
type WeightFunc func(n *tree.Node) float64

// ValueWeight is the default weight model: a node's own Value, with zero or
// unset treated as 1. Plain topology trees therefore spread siblings evenly.
func ValueWeight(n *tree.Node) float64 {
	if n.Value > 0 {
		return n.Value
	}
	return 1
}

// SubtreeWeight sizes a node by the number of leaves beneath it, so branches
// with more content claim proportionally more angle regardless of authored
// values.
func SubtreeWeight(n *tree.Node) float64 {
	return float64(tree.Leaves(n))
}

// sanitizeWeight clamps a weight to a usable positive value.
func sanitizeWeight(w float64) float64 {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	return w
}
