package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// layoutCommand creates the layout command for computing sunburst geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output       string
		formats      string
		noCache      bool
		refresh      bool
		detailed     bool
		skipValidate bool
		parallelism  int
	)
	lf := &layoutFlagSet{}

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Compute a sunburst layout from a mind-map file",
		Long: `Compute a sunburst layout from a mind-map file.

The layout command takes a mind-map JSON file (a document envelope, a root
array, or a single root object) and computes sunburst geometry for it: one
sector per node, siblings sharing their parent's angular range in proportion
to weight, one ring per depth level. Use "-" to read from stdin.

One artifact is written per requested format: json (the full layout document
with diagnostics and stats), dot (Graphviz hierarchy), and text (indented
outline).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formats)
			opts.Refresh = refresh
			opts.Detailed = detailed
			opts.SkipValidate = skipValidate
			opts.Parallelism = parallelism
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "json", "comma-separated formats: json, dot, text")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "detailed DOT labels (values, leaf counts)")
	cmd.Flags().BoolVar(&skipValidate, "skip-validate", false, "skip the advisory geometry scan")
	cmd.Flags().IntVar(&parallelism, "parallelism", pipeline.DefaultParallelism, "concurrent root layouts")

	// Engine flags
	lf.register(cmd)

	return cmd
}

// runLayout loads the forest, computes the layout, and writes artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	roots, err := pipeline.LoadForest(input)
	if err != nil {
		return fmt.Errorf("load mind map %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing sunburst layout...")
	spinner.Start()
	sw := startTimer(c.Logger, "layout command")

	result, err := runner.Execute(ctx, roots, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	sw.done("sectors", result.Stats.NodeCount, "gaps", result.Stats.GapCount, "cached", result.CacheInfo.LayoutHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, input, output)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.GapCount, result.CacheInfo.LayoutHit)
	for _, d := range result.Layout.Diagnostics {
		printWarning("%s: %s", d.Code, d.Message)
	}
	for _, v := range result.Violations {
		printWarning("%s: %s", v.Kind, v.Message)
	}

	for _, p := range paths {
		if strings.HasSuffix(p, ".layout.json") {
			printNewline()
			printNextStep("Inspect", "sunwheel inspect --layout "+p)
			break
		}
	}

	return nil
}

// writeArtifacts writes each exported artifact next to the input (or under
// the explicit output base) and returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	base := output
	if base == "" {
		if input == "-" {
			base = appName
		} else {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}

	var paths []string
	for _, format := range []string{pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatText} {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(base, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath returns the output path for one export format.
func artifactPath(base, format string) string {
	switch format {
	case pipeline.FormatDOT:
		return base + ".dot"
	case pipeline.FormatText:
		return base + ".txt"
	default:
		return base + ".layout.json"
	}
}
