// Package layout computes radial sunburst layouts from node trees.
//
// # Overview
//
// A sunburst places every node of a hierarchy into an angular sector nested
// inside a ring determined by its depth. Siblings divide their parent's
// angular window proportionally to their weights, with fixed angular gaps
// reserved between them for visual separation. This package implements the
// full pass: weight evaluation, angular partitioning, gap insertion, radial
// ring assignment, the recursive composition of all three, forward mapping to
// screen coordinates, inverse hit-testing, and a post-hoc validator.
//
// # Basic Usage
//
// Compute a layout from a validated forest with [Build]:
//
//	cfg := layout.DefaultConfig()
//	result, err := layout.Build(roots, cfg)
//	if err != nil {
//	    // configuration or tree was rejected
//	}
//	for _, d := range result.Diagnostics {
//	    // non-fatal truncations and clamps
//	}
//
// The result is a forest of [PlacedNode] values mirroring the input
// structure, with synthetic gap sectors interleaved where gaps apply. Map a
// sector to a screen point with [ToScreen], and resolve pointer positions
// back to sectors with [HitTest].
//
// # Angles and Rings
//
// All angles are radians. Roots divide the full circle [0, 2π) in their
// input order, which fixes the clockwise arrangement on screen. Radii are
// expressed as ratios in [0, 1] of the container's half-extent; the ring for
// each depth is a uniform band of the configured [Config.InnerRadiusRatio] to
// [Config.OuterRadiusRatio] span.
//
// # Failure Semantics
//
// Invalid configuration and structurally unsound trees are rejected before
// any layout work. Everything else is best effort: depth and node budget
// overruns truncate the affected subtrees, and impossible gap configurations
// collapse to minimum floor angles, each reported as a [Diagnostic] on the
// result rather than an error. [Validate] inspects a placed forest and
// returns advisory violations; it never fails the layout.
//
// # Concurrency
//
// [Build] is a pure function of its inputs. Placed forests are never mutated
// after construction, so hit-testing and mapping are safe for concurrent
// callers. [WithParallelism] lays out root subtrees on separate goroutines;
// the output is identical to the sequential result.
package layout
