package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by [Config.Validate] (and by [Build] before
// any layout work) when the configuration is unusable. The wrapped message
// names the offending field.
var ErrInvalidConfig = errors.New("invalid layout configuration")

// Default configuration values. Zero fields in a Config are replaced with
// these by [Config.SetDefaults]; see that method for which fields treat zero
// as meaningful.
const (
	// DefaultGapAngleDegrees is the angular gap reserved between adjacent
	// sibling sectors.
	DefaultGapAngleDegrees = 2.0

	// DefaultMinChildrenForGap is the smallest sibling group that receives
	// gaps. Below this count gaps are skipped entirely.
	DefaultMinChildrenForGap = 2

	// DefaultInnerRadiusRatio is the inner edge of the root ring, leaving a
	// hole in the middle of the chart.
	DefaultInnerRadiusRatio = 0.15

	// DefaultOuterRadiusRatio is the outer edge of the deepest ring, leaving
	// margin for labels outside the chart.
	DefaultOuterRadiusRatio = 0.9

	// DefaultMaxDepth is the deepest level that is laid out. Children below
	// it are truncated with a diagnostic.
	DefaultMaxDepth = 8

	// DefaultMaxNodes bounds the total number of placed nodes per layout.
	DefaultMaxNodes = 5000

	// DefaultMinSectorAngle is the floor angle, in radians, assigned to each
	// sibling when reserved gaps leave no room to partition.
	DefaultMinSectorAngle = 0.01
)

// Config carries the engine parameters for one layout pass. The JSON form is
// the wire contract shared with editing clients; the TOML form is read from
// sunwheel.toml by the CLI and server.
//
// Changing any field changes the layout cache key, so stale entries are never
// served for a reconfigured engine.
type Config struct {
	// GapAngleDegrees is the fixed angular gap between adjacent siblings,
	// in degrees. Gaps are reserved between consecutive siblings only,
	// never before the first or after the last.
	GapAngleDegrees float64 `json:"gapAngleDegrees" toml:"gap_angle_degrees"`

	// MinChildrenForGap is the minimum sibling count for gaps to apply.
	MinChildrenForGap int `json:"minChildrenForGap" toml:"min_children_for_gap"`

	// EnableGaps toggles gap insertion globally.
	EnableGaps bool `json:"enableGaps" toml:"enable_gaps"`

	// InnerRadiusRatio and OuterRadiusRatio bound the radial band shared by
	// all rings, as ratios of the container half-extent.
	InnerRadiusRatio float64 `json:"innerRadiusRatio" toml:"inner_radius_ratio"`
	OuterRadiusRatio float64 `json:"outerRadiusRatio" toml:"outer_radius_ratio"`

	// MaxDepth is the deepest level laid out; deeper children are dropped
	// with a diagnostic.
	MaxDepth int `json:"maxDepth" toml:"max_depth"`

	// MaxNodes bounds the total number of placed nodes; sibling groups that
	// would exceed it are dropped with a diagnostic.
	MaxNodes int `json:"maxNodes" toml:"max_nodes"`

	// MinSectorAngle is the floor angle in radians used when reserved gaps
	// exceed the available range.
	MinSectorAngle float64 `json:"minSectorAngle" toml:"min_sector_angle"`
}

// DefaultConfig returns the standard engine configuration with gaps enabled.
func DefaultConfig() Config {
	return Config{
		GapAngleDegrees:   DefaultGapAngleDegrees,
		MinChildrenForGap: DefaultMinChildrenForGap,
		EnableGaps:        true,
		InnerRadiusRatio:  DefaultInnerRadiusRatio,
		OuterRadiusRatio:  DefaultOuterRadiusRatio,
		MaxDepth:          DefaultMaxDepth,
		MaxNodes:          DefaultMaxNodes,
		MinSectorAngle:    DefaultMinSectorAngle,
	}
}

// SetDefaults replaces zero fields with their defaults. GapAngleDegrees and
// InnerRadiusRatio are left alone because zero is meaningful for both (no
// visual gap, no center hole), as is EnableGaps (false disables gaps).
// This method is idempotent.
func (c *Config) SetDefaults() {
	if c.MinChildrenForGap == 0 {
		c.MinChildrenForGap = DefaultMinChildrenForGap
	}
	if c.OuterRadiusRatio == 0 {
		c.OuterRadiusRatio = DefaultOuterRadiusRatio
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = DefaultMaxNodes
	}
	if c.MinSectorAngle == 0 {
		c.MinSectorAngle = DefaultMinSectorAngle
	}
}

// Validate checks the configuration and returns ErrInvalidConfig (wrapped
// with the offending field) if it is unusable. Callers should fix the
// configuration and re-invoke; there is no partial layout for a bad config.
func (c Config) Validate() error {
	if c.GapAngleDegrees < 0 {
		return fmt.Errorf("%w: gapAngleDegrees must not be negative (got %v)", ErrInvalidConfig, c.GapAngleDegrees)
	}
	if c.MinChildrenForGap < 2 {
		return fmt.Errorf("%w: minChildrenForGap must be at least 2 (got %d)", ErrInvalidConfig, c.MinChildrenForGap)
	}
	if c.InnerRadiusRatio < 0 || c.InnerRadiusRatio > 1 {
		return fmt.Errorf("%w: innerRadiusRatio must be in [0, 1] (got %v)", ErrInvalidConfig, c.InnerRadiusRatio)
	}
	if c.OuterRadiusRatio < 0 || c.OuterRadiusRatio > 1 {
		return fmt.Errorf("%w: outerRadiusRatio must be in [0, 1] (got %v)", ErrInvalidConfig, c.OuterRadiusRatio)
	}
	if c.InnerRadiusRatio >= c.OuterRadiusRatio {
		return fmt.Errorf("%w: innerRadiusRatio (%v) must be less than outerRadiusRatio (%v)", ErrInvalidConfig, c.InnerRadiusRatio, c.OuterRadiusRatio)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth must not be negative (got %d)", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxNodes <= 0 {
		return fmt.Errorf("%w: maxNodes must be positive (got %d)", ErrInvalidConfig, c.MaxNodes)
	}
	if c.MinSectorAngle <= 0 {
		return fmt.Errorf("%w: minSectorAngle must be positive (got %v)", ErrInvalidConfig, c.MinSectorAngle)
	}
	return nil
}

// GapAngle returns the configured gap in radians.
func (c Config) GapAngle() float64 {
	return Radians(c.GapAngleDegrees)
}

// gapsApply reports whether gaps are inserted for a sibling group of the
// given size.
func (c Config) gapsApply(siblingCount int) bool {
	return c.EnableGaps && c.GapAngleDegrees > 0 && siblingCount >= c.MinChildrenForGap
}
