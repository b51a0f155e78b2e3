package layout

import (
	"errors"
	"math"
	"testing"
)

func TestRingFor(t *testing.T) {
	tests := []struct {
		name      string
		depth     int
		maxDepth  int
		rootInner float64
		rootOuter float64
		wantIn    float64
		wantOut   float64
	}{
		{
			name:     "root band",
			depth:    0,
			maxDepth: 2,
			rootOuter: 0.9, rootInner: 0.15,
			wantIn: 0.15, wantOut: 0.40,
		},
		{
			name:     "middle band",
			depth:    1,
			maxDepth: 2,
			rootOuter: 0.9, rootInner: 0.15,
			wantIn: 0.40, wantOut: 0.65,
		},
		{
			name:     "outer band reaches root outer exactly",
			depth:    2,
			maxDepth: 2,
			rootOuter: 0.9, rootInner: 0.15,
			wantIn: 0.65, wantOut: 0.9,
		},
		{
			name:     "depth beyond max clamps to outer band",
			depth:    7,
			maxDepth: 2,
			rootOuter: 0.9, rootInner: 0.15,
			wantIn: 0.65, wantOut: 0.9,
		},
		{
			name:     "max depth zero is one band",
			depth:    0,
			maxDepth: 0,
			rootOuter: 0.9, rootInner: 0.15,
			wantIn: 0.15, wantOut: 0.9,
		},
		{
			name:     "no center hole",
			depth:    0,
			maxDepth: 1,
			rootOuter: 1.0, rootInner: 0,
			wantIn: 0, wantOut: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, err := RingFor(tt.depth, tt.maxDepth, tt.rootInner, tt.rootOuter)
			if err != nil {
				t.Fatalf("RingFor() error = %v", err)
			}
			if math.Abs(in-tt.wantIn) > 1e-9 {
				t.Errorf("inner = %v, want %v", in, tt.wantIn)
			}
			if math.Abs(out-tt.wantOut) > 1e-9 {
				t.Errorf("outer = %v, want %v", out, tt.wantOut)
			}
		})
	}
}

func TestRingForNegativeDepth(t *testing.T) {
	_, _, err := RingFor(-1, 5, 0.15, 0.9)
	if !errors.Is(err, ErrNegativeDepth) {
		t.Errorf("RingFor(-1) error = %v, want %v", err, ErrNegativeDepth)
	}
}

func TestRingForExactOuterEdge(t *testing.T) {
	// The outermost band must end at rootOuter exactly, not at the
	// accumulated band width.
	_, out, err := RingFor(6, 6, 0.15, 0.9)
	if err != nil {
		t.Fatalf("RingFor() error = %v", err)
	}
	if out != 0.9 {
		t.Errorf("outer = %v, want exactly 0.9", out)
	}
}

func TestRingBandsAreContiguous(t *testing.T) {
	const maxDepth = 7
	for d := 0; d < maxDepth; d++ {
		_, outer, err := RingFor(d, maxDepth, 0.15, 0.9)
		if err != nil {
			t.Fatalf("RingFor(%d) error = %v", d, err)
		}
		inner, _, err := RingFor(d+1, maxDepth, 0.15, 0.9)
		if err != nil {
			t.Fatalf("RingFor(%d) error = %v", d+1, err)
		}
		if inner != outer {
			t.Errorf("band %d ends at %v but band %d starts at %v", d, outer, d+1, inner)
		}
	}
}
