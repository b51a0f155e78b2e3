package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// =============================================================================
// File Config (sunwheel.toml)
// =============================================================================

// fileConfig is the on-disk CLI configuration. Every field is optional; keys
// absent from the file keep their built-in defaults.
type fileConfig struct {
	Layout      layout.Config    `toml:"layout"`
	WeightModel string           `toml:"weight_model"`
	Server      serverFileConfig `toml:"server"`
}

// serverFileConfig configures the serve command. Flags override these values.
type serverFileConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// configPath returns the default sunwheel.toml path (~/.config/sunwheel/sunwheel.toml).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sunwheel.toml"), nil
}

// loadFileConfig reads a sunwheel.toml. A missing file is not an error: the
// defaults are returned unchanged so the CLI works without any setup.
func loadFileConfig(path string) (fileConfig, error) {
	cfg := fileConfig{
		Layout:      layout.DefaultConfig(),
		WeightModel: pipeline.DefaultWeightModel,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	// Decoding into the prefilled struct keeps defaults for absent keys, so
	// a partial [layout] table only overrides what it names.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfigPath picks the explicit path when given, the default otherwise.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := configPath()
	if err != nil {
		return ""
	}
	return path
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlagSet carries the engine tuning flags shared by the layout,
// validate, hittest, and inspect commands.
type layoutFlagSet struct {
	gap         float64
	minChildren int
	noGaps      bool
	inner       float64
	outer       float64
	maxDepth    int
	maxNodes    int
	minSector   float64
	weightModel string
	configFile  string
}

// register adds the shared engine flags to cmd.
func (f *layoutFlagSet) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.gap, "gap", layout.DefaultGapAngleDegrees, "angular gap between siblings in degrees")
	flags.IntVar(&f.minChildren, "min-children", layout.DefaultMinChildrenForGap, "minimum sibling count for gaps to apply")
	flags.BoolVar(&f.noGaps, "no-gaps", false, "disable gap insertion")
	flags.Float64Var(&f.inner, "inner", layout.DefaultInnerRadiusRatio, "inner radius ratio of the root ring")
	flags.Float64Var(&f.outer, "outer", layout.DefaultOuterRadiusRatio, "outer radius ratio of the chart")
	flags.IntVar(&f.maxDepth, "max-depth", layout.DefaultMaxDepth, "deepest level to lay out")
	flags.IntVar(&f.maxNodes, "max-nodes", layout.DefaultMaxNodes, "maximum number of placed sectors")
	flags.Float64Var(&f.minSector, "min-sector", layout.DefaultMinSectorAngle, "floor angle in radians for over-constrained sibling groups")
	flags.StringVarP(&f.weightModel, "weight-model", "w", pipeline.DefaultWeightModel, "sector weighting: value, subtree")
	flags.StringVar(&f.configFile, "config", "", "config file (default: ~/.config/sunwheel/sunwheel.toml)")
}

// options resolves the effective pipeline options. Precedence, lowest to
// highest: built-in defaults, sunwheel.toml, explicitly set flags.
func (f *layoutFlagSet) options(cmd *cobra.Command) (pipeline.Options, error) {
	cfg, err := loadFileConfig(resolveConfigPath(f.configFile))
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Config:      cfg.Layout,
		WeightModel: cfg.WeightModel,
	}

	flags := cmd.Flags()
	if flags.Changed("gap") {
		opts.Config.GapAngleDegrees = f.gap
	}
	if flags.Changed("min-children") {
		opts.Config.MinChildrenForGap = f.minChildren
	}
	if f.noGaps {
		opts.Config.EnableGaps = false
	}
	if flags.Changed("inner") {
		opts.Config.InnerRadiusRatio = f.inner
	}
	if flags.Changed("outer") {
		opts.Config.OuterRadiusRatio = f.outer
	}
	if flags.Changed("max-depth") {
		opts.Config.MaxDepth = f.maxDepth
	}
	if flags.Changed("max-nodes") {
		opts.Config.MaxNodes = f.maxNodes
	}
	if flags.Changed("min-sector") {
		opts.Config.MinSectorAngle = f.minSector
	}
	if flags.Changed("weight-model") {
		opts.WeightModel = f.weightModel
	}

	return opts, nil
}
