package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sunio "github.com/sunwheel-labs/sunwheel/pkg/io"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// validateCommand creates the validate command for checking layout geometry.
func (c *CLI) validateCommand() *cobra.Command {
	var fromLayout bool
	lf := &layoutFlagSet{}

	cmd := &cobra.Command{
		Use:   "validate [map.json|layout.json]",
		Short: "Check sunburst geometry for consistency",
		Long: `Check sunburst geometry for consistency.

By default the input is a mind-map file: a fresh layout is computed and then
scanned. With --layout the input is a previously exported layout document and
its geometry is scanned as-is.

The scan checks that every real sector has a positive angular range, that
children tile their parent's range exactly, that no two siblings overlap, and
that each ring sits on its parent's outer edge. Findings are printed per
sector; a clean layout exits zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			return c.runValidate(cmd.Context(), args[0], opts, fromLayout)
		},
	}

	cmd.Flags().BoolVar(&fromLayout, "layout", false, "treat the input as an exported layout document")
	lf.register(cmd)

	return cmd
}

// runValidate obtains the placed forest and scans it for violations.
func (c *CLI) runValidate(ctx context.Context, input string, opts pipeline.Options, fromLayout bool) error {
	placed, err := c.loadPlaced(ctx, input, opts, fromLayout)
	if err != nil {
		return err
	}

	sw := startTimer(c.Logger, "geometry scan")
	violations := layout.Validate(placed)
	sw.done("violations", len(violations))
	if len(violations) == 0 {
		printSuccess("Geometry is consistent")
		return nil
	}

	for _, v := range violations {
		printWarning("%s %s", v.Kind, v.NodeID)
		printDetail("%s", v.Message)
	}
	return fmt.Errorf("%d geometry violations", len(violations))
}

// loadPlaced returns the placed forest for an input file, either by reading
// an exported layout document or by laying out a mind-map file.
func (c *CLI) loadPlaced(ctx context.Context, input string, opts pipeline.Options, fromLayout bool) ([]*layout.PlacedNode, error) {
	if fromLayout {
		res, err := sunio.ImportLayout(input)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", input, err)
		}
		return res.Roots, nil
	}

	roots, err := pipeline.LoadForest(input)
	if err != nil {
		return nil, fmt.Errorf("load mind map %s: %w", input, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := pipeline.ComputeLayout(roots, opts)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	return res.Roots, nil
}
