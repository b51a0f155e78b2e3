package layout

import "errors"

// ErrNegativeDepth is returned by [RingFor] for a negative depth. Depths
// beyond maxDepth clamp to the deepest band instead of failing.
var ErrNegativeDepth = errors.New("depth must not be negative")

// RingFor computes the radial band for a depth. The span [rootInner,
// rootOuter] is divided into maxDepth+1 uniform bands; depth 0 (the root
// ring) occupies the innermost band and each level steps one band outward.
// Depths beyond maxDepth are clamped to the outermost band, so sectors
// supplied by collaborators with deeper trees still land on a drawable ring.
//
// The outermost band's outer edge is forced to rootOuter exactly, absorbing
// rounding slack the same way the final sibling absorbs angular slack.
func RingFor(depth, maxDepth int, rootInner, rootOuter float64) (inner, outer float64, err error) {
	if depth < 0 {
		return 0, 0, ErrNegativeDepth
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	inner, outer = ringFor(depth, maxDepth, rootInner, rootOuter)
	return inner, outer, nil
}

// ringFor is the internal band computation for depths already known to be
// non-negative.
func ringFor(depth, maxDepth int, rootInner, rootOuter float64) (float64, float64) {
	if depth > maxDepth {
		depth = maxDepth
	}
	bands := float64(maxDepth + 1)
	width := (rootOuter - rootInner) / bands

	// Both edges derive from the same expression so adjacent bands share
	// their boundary bit-for-bit.
	inner := rootInner + width*float64(depth)
	if depth == maxDepth {
		return inner, rootOuter
	}
	return inner, rootInner + width*float64(depth+1)
}
