package pipeline

import (
	"testing"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"text", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateWeightModel(t *testing.T) {
	tests := []struct {
		model   string
		wantErr bool
	}{
		{"value", false},
		{"subtree", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateWeightModel(tt.model)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWeightModel(%q) error = %v, wantErr %v", tt.model, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Zero options should validate with defaults: %v", err)
	}

	// Check defaults were set
	if opts.WeightModel != DefaultWeightModel {
		t.Errorf("WeightModel should be %q, got %q", DefaultWeightModel, opts.WeightModel)
	}
	if opts.Parallelism != DefaultParallelism {
		t.Errorf("Parallelism should be %d, got %d", DefaultParallelism, opts.Parallelism)
	}
	if opts.Config.MaxDepth != layout.DefaultMaxDepth {
		t.Errorf("Config.MaxDepth should be %d, got %d", layout.DefaultMaxDepth, opts.Config.MaxDepth)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateRejects(t *testing.T) {
	// Bad config
	opts := Options{Config: layout.Config{GapAngleDegrees: -1}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Negative gap angle should fail")
	}

	// Bad weight model
	opts = Options{WeightModel: "fibonacci"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unknown weight model should fail")
	}

	// Bad format
	opts = Options{Formats: []string{"svg"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unsupported format should fail")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMaxDepth := opts.Config.MaxDepth
	originalModel := opts.WeightModel

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Config.MaxDepth != originalMaxDepth {
		t.Error("Config.MaxDepth changed on second call")
	}
	if opts.WeightModel != originalModel {
		t.Error("WeightModel changed on second call")
	}
}

func TestOptionsShouldValidate(t *testing.T) {
	opts := Options{}
	if !opts.ShouldValidate() {
		t.Error("Default should run the geometry scan")
	}

	opts.SkipValidate = true
	if opts.ShouldValidate() {
		t.Error("SkipValidate=true should not scan")
	}
}

func TestOptionsWeightFunc(t *testing.T) {
	bush := &tree.Node{ID: "b", Value: 2, Children: []*tree.Node{
		{ID: "l1"}, {ID: "l2"}, {ID: "l3"},
	}}

	opts := Options{WeightModel: WeightModelSubtree}
	if got := opts.WeightFunc()(bush); got != 3 {
		t.Errorf("subtree weight = %v, want 3 (leaf count)", got)
	}

	opts = Options{WeightModel: WeightModelValue}
	if got := opts.WeightFunc()(bush); got != 2 {
		t.Errorf("value weight = %v, want the authored value 2", got)
	}

	// Unknown models fall back to value weighting
	opts = Options{WeightModel: "fibonacci"}
	if got := opts.WeightFunc()(bush); got != 2 {
		t.Errorf("fallback weight = %v, want 2", got)
	}
}

func TestOptionsLayoutKeyOpts(t *testing.T) {
	opts := Options{
		Config:      layout.DefaultConfig(),
		WeightModel: WeightModelSubtree,
		Parallelism: 8,
	}
	opts.Config.GapAngleDegrees = 4.5

	key := opts.LayoutKeyOpts()
	if key.GapAngleDegrees != 4.5 {
		t.Errorf("GapAngleDegrees = %v, want 4.5", key.GapAngleDegrees)
	}
	if key.WeightModel != WeightModelSubtree {
		t.Errorf("WeightModel = %q, want %q", key.WeightModel, WeightModelSubtree)
	}
	if !key.EnableGaps {
		t.Error("EnableGaps should carry through")
	}
}
