package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/layout"
)

// inspectCommand creates the inspect command for printing placed sectors.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		fromLayout bool
		showGaps   bool
		maxRows    int
	)
	lf := &layoutFlagSet{}

	cmd := &cobra.Command{
		Use:   "inspect [map.json|layout.json]",
		Short: "Print the placed sectors as a table",
		Long: `Print the placed sectors as a table.

Each row is one sector: its label indented by depth, the angular interval in
degrees, and the radial band. Gap sectors are hidden unless --gaps is given.

By default the input is a mind-map file and the layout is computed on the
fly; with --layout the input is a previously exported layout document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			placed, err := c.loadPlaced(cmd.Context(), args[0], opts, fromLayout)
			if err != nil {
				return err
			}
			return runInspect(placed, showGaps, maxRows)
		},
	}

	cmd.Flags().BoolVar(&fromLayout, "layout", false, "treat the input as an exported layout document")
	cmd.Flags().BoolVar(&showGaps, "gaps", false, "include gap sectors")
	cmd.Flags().IntVar(&maxRows, "rows", 50, "maximum rows to print (0 for all)")
	lf.register(cmd)

	return cmd
}

// sectorRow is one rendered table row plus the styling hints for it.
type sectorRow struct {
	cells []string
	isGap bool
	depth int
}

// runInspect renders the placed forest as a bordered table.
func runInspect(placed []*layout.PlacedNode, showGaps bool, maxRows int) error {
	rows := sectorRows(placed, showGaps)

	total := len(rows)
	truncated := false
	if maxRows > 0 && total > maxRows {
		rows = rows[:maxRows]
		truncated = true
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Sector", "Depth", "Start", "Range", "Ring", "Value").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(rows) {
				return lipgloss.NewStyle()
			}
			r := rows[row]
			switch {
			case r.isGap:
				return lipgloss.NewStyle().Foreground(colorFaint)
			case r.depth == 0 && col == 0:
				return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorText)
			default:
				return lipgloss.NewStyle().Foreground(colorMuted)
			}
		})

	fmt.Println(t.Render())

	stats := sectorStats(placed)
	summary := fmt.Sprintf("  %d sectors · %d gaps · depth %d", stats.NodeCount, stats.GapCount, stats.Depth)
	if truncated {
		summary += fmt.Sprintf(" · showing %d of %d rows", maxRows, total)
	}
	fmt.Println(StyleDim.Render(summary))

	return nil
}

// sectorRows flattens the placed forest into table rows in draw order.
func sectorRows(placed []*layout.PlacedNode, showGaps bool) []sectorRow {
	var rows []sectorRow
	layout.WalkPlaced(placed, func(p *layout.PlacedNode) bool {
		if p.IsGap && !showGaps {
			return true
		}

		indent := strings.Repeat("  ", p.Depth)
		label := p.Name
		if label == "" {
			label = p.ID
		}
		if p.IsGap {
			label = "(gap)"
		}

		value := ""
		if !p.IsGap && p.Value != 0 {
			value = fmt.Sprintf("%g", p.Value)
		}

		rows = append(rows, sectorRow{
			cells: []string{
				indent + label,
				fmt.Sprintf("%d", p.Depth),
				fmt.Sprintf("%.1f°", layout.Degrees(p.StartAngle)),
				fmt.Sprintf("%.1f°", layout.Degrees(p.AngleRange)),
				formatRingSpan(p.InnerRadius, p.OuterRadius),
				value,
			},
			isGap: p.IsGap,
			depth: p.Depth,
		})
		return true
	})
	return rows
}

// sectorStats recounts sectors and depth for display. Exported layout files
// carry stats already, but recounting keeps inspect independent of where the
// forest came from.
func sectorStats(placed []*layout.PlacedNode) layout.Stats {
	var s layout.Stats
	layout.WalkPlaced(placed, func(p *layout.PlacedNode) bool {
		if p.IsGap {
			s.GapCount++
			return true
		}
		s.NodeCount++
		if p.Depth > s.Depth {
			s.Depth = p.Depth
		}
		return true
	})
	return s
}
