package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

// Colors are named by role, not hue, so a theme change stays local to this
// block. The accent is sun gold to match the product.
var (
	colorAccent = lipgloss.Color("214") // gold - headings, current row
	colorOK     = lipgloss.Color("35")  // green - success
	colorWarn   = lipgloss.Color("220") // amber - warnings
	colorErr    = lipgloss.Color("167") // soft red - errors
	colorLink   = lipgloss.Color("75")  // light blue - commands
	colorText   = lipgloss.Color("255") // bright white - values
	colorMuted  = lipgloss.Color("245") // gray - secondary text
	colorFaint  = lipgloss.Color("240") // dim gray - chrome
)

// Styles shared with the table and TUI views.
var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)
)

var (
	styleOKGlyph   = lipgloss.NewStyle().Foreground(colorOK)
	styleErrGlyph  = lipgloss.NewStyle().Foreground(colorErr)
	styleWarnGlyph = lipgloss.NewStyle().Foreground(colorWarn)
	styleInfoGlyph = lipgloss.NewStyle().Foreground(colorMuted)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorAccent)

	styleWarnText = lipgloss.NewStyle().Foreground(colorWarn)
	styleValue    = lipgloss.NewStyle().Foreground(colorText)
	styleCommand  = lipgloss.NewStyle().Foreground(colorLink)
	styleKey      = lipgloss.NewStyle().Foreground(colorMuted).Width(12)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "↳"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// status prints a glyph-prefixed line; all the print helpers funnel through
// it so spacing stays uniform.
func status(glyphStyle lipgloss.Style, glyph, msg string) {
	fmt.Println(glyphStyle.Render(glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleOKGlyph, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleErrGlyph, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleWarnGlyph, iconWarning, styleWarnText.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleInfoGlyph, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written-artifact line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value in a fixed-width key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints the one-line layout summary: sector and gap counts plus a
// cached/fresh badge.
func printStats(sectorCount, gapCount int, cached bool) {
	parts := []string{fmt.Sprintf("%d sectors", sectorCount)}
	if gapCount > 0 {
		parts = append(parts, fmt.Sprintf("%d gaps", gapCount))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	badge := styleComputed.Render(iconFresh)
	if cached {
		badge = styleCached.Render(iconCached)
	}
	parts = append(parts, badge)

	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
