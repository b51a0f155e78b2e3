package cli

import (
	"testing"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func TestRunHitTestRejectsBadViewport(t *testing.T) {
	if err := runHitTest(nil, 10, 10, 0, 600); err == nil {
		t.Error("zero width should error")
	}
	if err := runHitTest(nil, 10, 10, 600, -1); err == nil {
		t.Error("negative height should error")
	}
}

func TestRunHitTestHitAndMiss(t *testing.T) {
	roots := []*tree.Node{{ID: "solo", Name: "Solo"}}

	res, err := pipeline.ComputeLayout(roots, pipeline.Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	// Probe the sector's own centroid: always a hit.
	pt := layout.ToScreen(res.Roots[0], 600, 600)
	if err := runHitTest(res.Roots, pt.X, pt.Y, 600, 600); err != nil {
		t.Errorf("centroid probe error: %v", err)
	}

	// The viewport corner lies outside the chart circle: a miss, not an error.
	if err := runHitTest(res.Roots, 1, 1, 600, 600); err != nil {
		t.Errorf("corner probe error: %v", err)
	}
}

func TestFormatAngleSpan(t *testing.T) {
	got := formatAngleSpan(0, layout.Radians(90))
	if got != "0.0° + 90.0°" {
		t.Errorf("formatAngleSpan() = %q", got)
	}
}

func TestFormatRingSpan(t *testing.T) {
	got := formatRingSpan(0.15, 0.9)
	if got != "0.150 to 0.900" {
		t.Errorf("formatRingSpan() = %q", got)
	}
}
