package layout

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func TestBuildTwoChildrenWithGap(t *testing.T) {
	// Root with children weighted 1 and 3 and a 10 degree gap: the children
	// split the remaining 350 degrees 1:3.
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "a", Value: 1},
		{ID: "b", Value: 3},
	}}}

	cfg := DefaultConfig()
	cfg.GapAngleDegrees = 10

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}

	root := res.Roots[0]
	if root.StartAngle != 0 || math.Abs(root.AngleRange-twoPi) > Epsilon {
		t.Fatalf("root interval = [%v, %v), want full circle", root.StartAngle, root.AngleRange)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected child, gap, child; got %d entries", len(root.Children))
	}

	a, gap, b := root.Children[0], root.Children[1], root.Children[2]
	if math.Abs(Degrees(a.AngleRange)-87.5) > 1e-9 {
		t.Errorf("a range = %v degrees, want 87.5", Degrees(a.AngleRange))
	}
	if a.StartAngle != 0 {
		t.Errorf("a starts at %v, want 0", a.StartAngle)
	}
	if !gap.IsGap || math.Abs(Degrees(gap.AngleRange)-10) > 1e-9 {
		t.Errorf("gap range = %v degrees, want 10", Degrees(gap.AngleRange))
	}
	if math.Abs(Degrees(b.AngleRange)-262.5) > 1e-9 {
		t.Errorf("b range = %v degrees, want 262.5", Degrees(b.AngleRange))
	}
	if b.EndAngle() != twoPi {
		t.Errorf("b ends at %v, want exactly 2π", b.EndAngle())
	}

	if violations := Validate(res.Roots); len(violations) != 0 {
		t.Errorf("validator reported %v", violations)
	}
}

func TestBuildAngleConservation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"equal weights", []float64{1, 1, 1, 1}},
		{"skewed weights", []float64{1, 1000}},
		{"mixed weights", []float64{0.5, 2, 7, 0.1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children := make([]*tree.Node, len(tt.values))
			for i, v := range tt.values {
				children[i] = &tree.Node{ID: string(rune('a' + i)), Value: v}
			}
			roots := []*tree.Node{{ID: "root", Children: children}}

			res, err := Build(roots, DefaultConfig())
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			root := res.Roots[0]
			var sum float64
			for _, c := range root.Children {
				sum += c.AngleRange
				if !c.IsGap && c.AngleRange <= 0 {
					t.Errorf("child %s range = %v, want positive", c.ID, c.AngleRange)
				}
			}
			if math.Abs(sum-root.AngleRange) > Epsilon {
				t.Errorf("children sum to %v, parent range %v", sum, root.AngleRange)
			}
			if violations := Validate(res.Roots); len(violations) != 0 {
				t.Errorf("validator reported %v", violations)
			}
		})
	}
}

func TestBuildMultipleRootsGetRootGaps(t *testing.T) {
	roots := []*tree.Node{
		{ID: "r1", Value: 1},
		{ID: "r2", Value: 1},
		{ID: "r3", Value: 2},
	}

	res, err := Build(roots, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(res.Roots) != 5 {
		t.Fatalf("expected 3 roots + 2 gaps, got %d", len(res.Roots))
	}
	if res.Roots[1].ID != "__root__gap_0" || res.Roots[3].ID != "__root__gap_1" {
		t.Errorf("root gap IDs = %q, %q", res.Roots[1].ID, res.Roots[3].ID)
	}

	var sum float64
	for _, r := range res.Roots {
		sum += r.AngleRange
	}
	if math.Abs(sum-twoPi) > Epsilon {
		t.Errorf("roots sum to %v, want 2π", sum)
	}
	if res.Roots[len(res.Roots)-1].EndAngle() != twoPi {
		t.Errorf("last root ends at %v, want exactly 2π", res.Roots[len(res.Roots)-1].EndAngle())
	}
}

func TestBuildDefaultsZeroValues(t *testing.T) {
	// Zero and unset values weigh as 1, so both children split evenly.
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "a", Value: 0},
		{ID: "b"},
	}}}

	cfg := DefaultConfig()
	cfg.EnableGaps = false

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	a, b := res.Roots[0].Children[0], res.Roots[0].Children[1]
	if math.Abs(a.AngleRange-b.AngleRange) > Epsilon {
		t.Errorf("ranges %v and %v, want equal", a.AngleRange, b.AngleRange)
	}
}

func TestBuildSingleChildFullRange(t *testing.T) {
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{{ID: "only"}}}}

	res, err := Build(roots, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	root := res.Roots[0]
	if len(root.Children) != 1 {
		t.Fatalf("expected single child without gaps, got %d entries", len(root.Children))
	}
	only := root.Children[0]
	if only.StartAngle != root.StartAngle || math.Abs(only.AngleRange-root.AngleRange) > Epsilon {
		t.Errorf("child interval [%v, %v), want parent's [%v, %v)",
			only.StartAngle, only.AngleRange, root.StartAngle, root.AngleRange)
	}
}

func TestBuildRingAssignment(t *testing.T) {
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "a", Children: []*tree.Node{{ID: "a1"}}},
	}}}

	cfg := DefaultConfig()
	cfg.MaxDepth = 2

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	root := res.Roots[0]
	a := root.Children[0]
	a1 := a.Children[0]

	band := (cfg.OuterRadiusRatio - cfg.InnerRadiusRatio) / 3
	if math.Abs(root.InnerRadius-0.15) > 1e-9 || math.Abs(root.OuterRadius-(0.15+band)) > 1e-9 {
		t.Errorf("root ring = [%v, %v)", root.InnerRadius, root.OuterRadius)
	}
	if a.InnerRadius != root.OuterRadius {
		t.Errorf("child ring starts at %v, parent ends at %v", a.InnerRadius, root.OuterRadius)
	}
	if a1.OuterRadius != cfg.OuterRadiusRatio {
		t.Errorf("deepest ring ends at %v, want %v", a1.OuterRadius, cfg.OuterRadiusRatio)
	}
	if root.Depth != 0 || a.Depth != 1 || a1.Depth != 2 {
		t.Errorf("depths = %d, %d, %d", root.Depth, a.Depth, a1.Depth)
	}
}

func TestBuildDepthTruncation(t *testing.T) {
	roots := []*tree.Node{{ID: "a", Children: []*tree.Node{
		{ID: "b", Children: []*tree.Node{
			{ID: "c", Children: []*tree.Node{
				{ID: "d"},
			}},
		}},
	}}}

	cfg := DefaultConfig()
	cfg.MaxDepth = 2

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if FindPlaced(res.Roots, "d") != nil {
		t.Error("node beyond max depth was placed")
	}
	if FindPlaced(res.Roots, "c") == nil {
		t.Error("node at max depth missing")
	}

	var diag *Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Code == DiagDepthTruncated {
			diag = &res.Diagnostics[i]
		}
	}
	if diag == nil {
		t.Fatalf("expected depth truncation diagnostic, got %v", res.Diagnostics)
	}
	if diag.NodeID != "c" {
		t.Errorf("diagnostic names %q, want c", diag.NodeID)
	}
	if res.Stats.NodeCount != 3 || res.Stats.Depth != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestBuildNodeBudget(t *testing.T) {
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "b", Children: []*tree.Node{{ID: "d1"}, {ID: "d2"}}},
		{ID: "c"},
	}}}

	cfg := DefaultConfig()
	cfg.MaxNodes = 3

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if res.Stats.NodeCount != 3 {
		t.Errorf("placed %d nodes, want 3", res.Stats.NodeCount)
	}
	if FindPlaced(res.Roots, "d1") != nil || FindPlaced(res.Roots, "d2") != nil {
		t.Error("nodes beyond budget were placed")
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Code == DiagNodesTruncated && d.NodeID == "b" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected node budget diagnostic for b, got %v", res.Diagnostics)
	}
}

func TestBuildFloorAngle(t *testing.T) {
	// The middle child's sliver is far narrower than the gaps its own
	// children would need, so that group falls back to floor angles.
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "big", Value: 10000},
		{ID: "tiny", Value: 1, Children: []*tree.Node{
			{ID: "t1"},
			{ID: "t2"},
		}},
	}}}

	cfg := DefaultConfig()

	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var diag *Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Code == DiagFloorAngle {
			diag = &res.Diagnostics[i]
		}
	}
	if diag == nil {
		t.Fatalf("expected floor angle diagnostic, got %v", res.Diagnostics)
	}
	if diag.NodeID != "tiny" {
		t.Errorf("diagnostic names %q, want tiny", diag.NodeID)
	}

	t1 := FindPlaced(res.Roots, "t1")
	t2 := FindPlaced(res.Roots, "t2")
	if t1 == nil || t2 == nil {
		t.Fatal("floored children missing from layout")
	}
	if t1.AngleRange != cfg.MinSectorAngle || t2.AngleRange != cfg.MinSectorAngle {
		t.Errorf("floored ranges = %v, %v, want %v", t1.AngleRange, t2.AngleRange, cfg.MinSectorAngle)
	}

	// The floored group no longer tiles its parent; the validator says so.
	hasSum := false
	for _, v := range Validate(res.Roots) {
		if v.Kind == ViolationAngleSum && v.NodeID == "tiny" {
			hasSum = true
		}
	}
	if !hasSum {
		t.Error("expected angle sum violation for the floored group")
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	roots := []*tree.Node{
		{ID: "r1", Value: 2, Children: []*tree.Node{
			{ID: "r1a", Value: 1}, {ID: "r1b", Value: 3},
		}},
		{ID: "r2", Value: 1, Children: []*tree.Node{
			{ID: "r2a"}, {ID: "r2b"}, {ID: "r2c"},
		}},
		{ID: "r3", Value: 5},
		{ID: "r4", Value: 0.5, Children: []*tree.Node{{ID: "r4a"}}},
	}

	cfg := DefaultConfig()

	seq, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	par, err := Build(roots, cfg, WithParallelism(4))
	if err != nil {
		t.Fatalf("Build(parallel) error = %v", err)
	}

	if !reflect.DeepEqual(seq.Roots, par.Roots) {
		t.Error("parallel layout differs from sequential")
	}
	if !reflect.DeepEqual(seq.Stats, par.Stats) {
		t.Errorf("parallel stats %+v differ from sequential %+v", par.Stats, seq.Stats)
	}
}

func TestBuildRejects(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.InnerRadiusRatio = 0.95
		_, err := Build(fanTree(2), cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Build() error = %v, want %v", err, ErrInvalidConfig)
		}
	})

	t.Run("negative gap angle", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GapAngleDegrees = -3
		_, err := Build(fanTree(2), cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Build() error = %v, want %v", err, ErrInvalidConfig)
		}
	})

	t.Run("cyclic tree", func(t *testing.T) {
		a := &tree.Node{ID: "a"}
		b := &tree.Node{ID: "b"}
		a.Children = []*tree.Node{b}
		b.Children = []*tree.Node{a}

		_, err := Build([]*tree.Node{a}, DefaultConfig())
		if !errors.Is(err, tree.ErrCyclicStructure) {
			t.Errorf("Build() error = %v, want %v", err, tree.ErrCyclicStructure)
		}
	})

	t.Run("duplicate IDs", func(t *testing.T) {
		_, err := Build([]*tree.Node{{ID: "x"}, {ID: "x"}}, DefaultConfig())
		if !errors.Is(err, tree.ErrDuplicateNodeID) {
			t.Errorf("Build() error = %v, want %v", err, tree.ErrDuplicateNodeID)
		}
	})
}

func TestBuildEmptyForest(t *testing.T) {
	res, err := Build(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(res.Roots) != 0 || res.Stats.NodeCount != 0 {
		t.Errorf("empty forest produced %+v", res)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "a", Value: 1},
		{ID: "b", Value: 2},
	}}}
	before := tree.CloneForest(roots)

	if _, err := Build(roots, DefaultConfig()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(roots, before) {
		t.Error("Build mutated the input forest")
	}
}

func TestBuildSubtreeWeight(t *testing.T) {
	// Under SubtreeWeight, a branch with three leaves claims three times
	// the angle of a single leaf regardless of values.
	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "bushy", Value: 1, Children: []*tree.Node{
			{ID: "l1"}, {ID: "l2"}, {ID: "l3"},
		}},
		{ID: "lone", Value: 1},
	}}}

	cfg := DefaultConfig()
	cfg.EnableGaps = false

	res, err := Build(roots, cfg, WithWeightFunc(SubtreeWeight))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	bushy := res.Roots[0].Children[0]
	lone := res.Roots[0].Children[1]
	if math.Abs(bushy.AngleRange-3*lone.AngleRange) > Epsilon {
		t.Errorf("bushy = %v, lone = %v, want 3:1", bushy.AngleRange, lone.AngleRange)
	}
}

func TestDiagnosticMessages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 1

	roots := []*tree.Node{{ID: "root", Children: []*tree.Node{
		{ID: "a", Children: []*tree.Node{{ID: "b"}}},
	}}}
	res, err := Build(roots, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	if !strings.Contains(res.Diagnostics[0].Message, "depth") {
		t.Errorf("message %q does not mention depth", res.Diagnostics[0].Message)
	}
}
