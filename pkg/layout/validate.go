package layout

import (
	"fmt"
	"math"
)

// Epsilon is the angular tolerance, in radians, used by [Validate] when
// comparing sums and bounds. Layout arithmetic keeps errors well below it by
// forcing exact ends on final siblings and outermost rings.
const Epsilon = 1e-6

// ViolationKind classifies a validator finding.
type ViolationKind string

const (
	// ViolationAngleSum reports a sibling group whose ranges (real + gap)
	// do not sum to the parent's range within [Epsilon].
	ViolationAngleSum ViolationKind = "ANGLE_SUM"

	// ViolationOverlap reports two real siblings with intersecting angular
	// intervals.
	ViolationOverlap ViolationKind = "SIBLING_OVERLAP"

	// ViolationRingOrder reports a child whose ring does not sit exactly on
	// its parent's outer edge, or is radially inverted.
	ViolationRingOrder ViolationKind = "RING_ORDER"

	// ViolationEmptyRange reports a real sector with non-positive angular
	// range.
	ViolationEmptyRange ViolationKind = "EMPTY_RANGE"
)

// Violation is one validator finding. Violations are advisory: a layout that
// produces them is still renderable, and runtime callers log them instead of
// failing. Tests treat any violation as a failure.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	NodeID  string        `json:"nodeId,omitempty"`
	Message string        `json:"message"`
}

// Validate checks a placed forest for geometric consistency and returns all
// violations found. It never panics and never modifies the forest.
//
// Checked per node: real sectors have positive range; children's ranges
// (including gaps) sum to the parent's range; no two real siblings overlap
// (wraparound-aware); every child ring starts at the parent ring's outer
// edge and is not inverted.
func Validate(roots []*PlacedNode) []Violation {
	var out []Violation
	WalkPlaced(roots, func(p *PlacedNode) bool {
		out = append(out, validateNode(p)...)
		return true
	})
	return out
}

func validateNode(p *PlacedNode) []Violation {
	var out []Violation

	if !p.IsGap && p.AngleRange <= 0 {
		out = append(out, Violation{
			Kind:    ViolationEmptyRange,
			NodeID:  p.ID,
			Message: fmt.Sprintf("angle range %v is not positive", p.AngleRange),
		})
	}

	if len(p.Children) == 0 {
		return out
	}

	var sum float64
	for _, c := range p.Children {
		sum += c.AngleRange
	}
	if math.Abs(sum-p.AngleRange) > Epsilon {
		out = append(out, Violation{
			Kind:    ViolationAngleSum,
			NodeID:  p.ID,
			Message: fmt.Sprintf("children ranges sum to %v, parent range is %v", sum, p.AngleRange),
		})
	}

	real := p.RealChildren()
	for i := 0; i < len(real); i++ {
		for j := i + 1; j < len(real); j++ {
			if arcOverlap(real[i].StartAngle, real[i].AngleRange, real[j].StartAngle, real[j].AngleRange) > Epsilon {
				out = append(out, Violation{
					Kind:    ViolationOverlap,
					NodeID:  real[i].ID,
					Message: fmt.Sprintf("interval overlaps sibling %s", real[j].ID),
				})
			}
		}
	}

	for _, c := range p.Children {
		if c.InnerRadius >= c.OuterRadius {
			out = append(out, Violation{
				Kind:    ViolationRingOrder,
				NodeID:  c.ID,
				Message: fmt.Sprintf("ring [%v, %v) is inverted or empty", c.InnerRadius, c.OuterRadius),
			})
			continue
		}
		if math.Abs(c.InnerRadius-p.OuterRadius) > Epsilon {
			out = append(out, Violation{
				Kind:    ViolationRingOrder,
				NodeID:  c.ID,
				Message: fmt.Sprintf("ring starts at %v, parent ring ends at %v", c.InnerRadius, p.OuterRadius),
			})
		}
	}

	return out
}
