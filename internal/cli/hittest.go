package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
)

// hittestCommand creates the hittest command for resolving screen coordinates.
func (c *CLI) hittestCommand() *cobra.Command {
	var (
		width      float64
		height     float64
		fromLayout bool
	)
	lf := &layoutFlagSet{}

	cmd := &cobra.Command{
		Use:   "hittest [map.json|layout.json] [x] [y]",
		Short: "Resolve a screen coordinate to the sector under it",
		Long: `Resolve a screen coordinate to the sector under it.

The coordinate is interpreted in a viewport of --width by --height pixels with
the chart centered, the same mapping browsers use when rendering the layout.
The deepest sector whose angular span contains the point wins; gap sectors
and the blank center are misses.

By default the input is a mind-map file and the layout is computed on the
fly; with --layout the input is a previously exported layout document.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parse y %q: %w", args[2], err)
			}
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}

			placed, err := c.loadPlaced(cmd.Context(), args[0], opts, fromLayout)
			if err != nil {
				return err
			}
			return runHitTest(placed, x, y, width, height)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 800, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 600, "viewport height in pixels")
	cmd.Flags().BoolVar(&fromLayout, "layout", false, "treat the input as an exported layout document")
	lf.register(cmd)

	return cmd
}

// runHitTest probes the placed forest and prints the sector under the point.
func runHitTest(placed []*layout.PlacedNode, x, y, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport dimensions must be positive (got %vx%v)", width, height)
	}

	hit := layout.HitTest(x, y, placed, width, height)
	if hit == nil {
		printInfo("No sector at (%.0f, %.0f)", x, y)
		return nil
	}

	label := hit.Name
	if label == "" {
		label = hit.ID
	}
	printSuccess("Hit %s", label)
	printKeyValue("ID", hit.ID)
	printKeyValue("Depth", strconv.Itoa(hit.Depth))
	printKeyValue("Angle", formatAngleSpan(hit.StartAngle, hit.AngleRange))
	printKeyValue("Ring", formatRingSpan(hit.InnerRadius, hit.OuterRadius))
	if hit.Value != 0 {
		printKeyValue("Value", strconv.FormatFloat(hit.Value, 'g', -1, 64))
	}

	centroid := layout.ToScreen(hit, width, height)
	printKeyValue("Centroid", fmt.Sprintf("(%.1f, %.1f)", centroid.X, centroid.Y))

	return nil
}

// formatAngleSpan renders an angular interval in degrees.
func formatAngleSpan(start, rng float64) string {
	return fmt.Sprintf("%.1f° + %.1f°", layout.Degrees(start), layout.Degrees(rng))
}

// formatRingSpan renders a radial band as ratios of the half-extent.
func formatRingSpan(inner, outer float64) string {
	return fmt.Sprintf("%.3f to %.3f", inner, outer)
}
