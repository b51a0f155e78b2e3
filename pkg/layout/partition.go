package layout

import "errors"

var (
	// ErrGapExceedsRange is returned by [Partition] when the reserved gaps
	// alone meet or exceed the parent range, leaving nothing to distribute.
	ErrGapExceedsRange = errors.New("reserved gaps exceed available angular range")

	// ErrNonPositiveWeight is returned by [Partition] when a weight is zero
	// or negative. Weight models are responsible for defaulting; see
	// [ValueWeight].
	ErrNonPositiveWeight = errors.New("weights must be positive")

	// ErrNegativeGap is returned by [Partition] when the reserved gap is
	// negative.
	ErrNegativeGap = errors.New("reserved gap must not be negative")
)

// Interval is a half-open angular interval [Start, Start+Range).
type Interval struct {
	Start float64
	Range float64
}

// End returns the exclusive end of the interval.
func (iv Interval) End() float64 { return iv.Start + iv.Range }

// Partition divides a parent angular interval among siblings proportionally
// to their weights, reserving a fixed gap between consecutive siblings (not
// before the first or after the last). Interval order equals weight order:
// the caller's sibling order fixes the clockwise arrangement, and nothing is
// sorted by size.
//
// Intervals are assigned by running cumulative sum rather than independent
// multiplication, so rounding error does not compound across a large sibling
// group, and the final interval's end is forced to parentStart+parentRange
// exactly, absorbing any remaining slack into the last sector.
//
// Returns ErrGapExceedsRange when reservedGap*(n-1) >= parentRange. Callers
// that must produce a layout regardless use the floor-angle policy in
// [Build] instead of calling Partition directly.
func Partition(weights []float64, parentStart, parentRange, reservedGap float64) ([]Interval, error) {
	n := len(weights)
	if n == 0 {
		return nil, nil
	}
	if reservedGap < 0 {
		return nil, ErrNegativeGap
	}

	var sum float64
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrNonPositiveWeight
		}
		sum += w
	}

	available := parentRange - reservedGap*float64(n-1)
	if available <= 0 {
		return nil, ErrGapExceedsRange
	}

	out := make([]Interval, n)
	cursor := parentStart
	for i, w := range weights {
		r := available * w / sum
		out[i] = Interval{Start: cursor, Range: r}
		cursor += r
		if i < n-1 {
			cursor += reservedGap
		}
	}

	// Absorb rounding slack into the last sector.
	last := &out[n-1]
	last.Range = parentStart + parentRange - last.Start

	return out, nil
}

// floorPartition assigns every sibling the minimum floor angle, packed from
// parentStart with no gaps. This is the degenerate fallback for when
// reserved gaps leave no distributable range: the result intentionally does
// not respect the parent range (the validator flags it), but every sector
// remains renderable.
func floorPartition(n int, parentStart, floor float64) []Interval {
	out := make([]Interval, n)
	cursor := parentStart
	for i := range out {
		out[i] = Interval{Start: cursor, Range: floor}
		cursor += floor
	}
	return out
}
