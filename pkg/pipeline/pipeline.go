// Package pipeline provides the core layout pipeline for Sunwheel.
//
// This package implements the complete ingest → layout → export pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: Decode and validate a mind-map forest from JSON
//  2. Layout: Compute the sunburst geometry for the forest
//  3. Export: Generate output in machine formats (JSON, DOT, text)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout results are cached by content hash, so re-laying-out an unchanged
// forest with unchanged options is a cache read.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Config:  layout.DefaultConfig(),
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, roots, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Layout with caching
//	res, err := runner.Layout(ctx, roots, opts)
//
//	// Export an existing layout
//	artifacts, err := pipeline.Export(res, roots, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultParallelism keeps the layout pass sequential. Per-root
	// parallelism only pays off for wide forests, so entry points opt in
	// explicitly.
	DefaultParallelism = 1

	// DefaultWeightModel sizes sectors by the authored node values.
	DefaultWeightModel = WeightModelValue
)

// Weight model names accepted in Options and cache keys.
const (
	WeightModelValue   = "value"
	WeightModelSubtree = "subtree"
)

// ValidWeightModels is the set of supported weight models.
var ValidWeightModels = map[string]bool{
	WeightModelValue:   true,
	WeightModelSubtree: true,
}

// Format constants for export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "text"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Config      layout.Config `json:"config"`
	WeightModel string        `json:"weightModel,omitempty"`
	Parallelism int           `json:"parallelism,omitempty"`
	Refresh     bool          `json:"refresh,omitempty"` // Bypass the cache read; the fresh result still gets written back

	// SkipValidate disables the advisory geometry scan after layout
	// (default: false = scan and report violations in the result).
	SkipValidate bool `json:"skipValidate,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Detailed DOT labels (values, leaf counts)

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the placed forest with diagnostics.
	Layout *layout.Result

	// TreeHash is the content hash of the input forest.
	TreeHash string

	// Violations holds advisory geometry findings, empty for a clean layout.
	// Nil when the scan was skipped.
	Violations []layout.Violation

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int // real sectors placed
	GapCount     int // synthetic gap sectors
	LayoutTime   time.Duration
	ValidateTime time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, text)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWeightModel checks that a weight model is valid.
func ValidateWeightModel(model string) error {
	if !ValidWeightModels[model] {
		return fmt.Errorf("invalid weight model: %q (must be one of: value, subtree)", model)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.SetLayoutDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := ValidateWeightModel(o.WeightModel); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.Config.SetDefaults()
	if o.WeightModel == "" {
		o.WeightModel = DefaultWeightModel
	}
	if o.Parallelism == 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ShouldValidate returns whether the advisory geometry scan should run.
func (o *Options) ShouldValidate() bool {
	return !o.SkipValidate
}

// WeightFunc resolves the configured weight model to its implementation.
// Unknown models fall back to the default so a half-validated Options value
// still lays out.
func (o *Options) WeightFunc() layout.WeightFunc {
	switch o.WeightModel {
	case WeightModelSubtree:
		return layout.SubtreeWeight
	default:
		return layout.ValueWeight
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
// Parallelism is deliberately absent: it changes how the layout is computed,
// never what it contains.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		GapAngleDegrees:   o.Config.GapAngleDegrees,
		MinChildrenForGap: o.Config.MinChildrenForGap,
		EnableGaps:        o.Config.EnableGaps,
		InnerRadiusRatio:  o.Config.InnerRadiusRatio,
		OuterRadiusRatio:  o.Config.OuterRadiusRatio,
		MaxDepth:          o.Config.MaxDepth,
		MaxNodes:          o.Config.MaxNodes,
		MinSectorAngle:    o.Config.MinSectorAngle,
		WeightModel:       o.WeightModel,
	}
}
