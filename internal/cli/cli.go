// Package cli implements the sunwheel command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/buildinfo"
	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sunwheel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The --verbose flag switches the shared logger to debug level once flags are
// parsed, so it applies to every subcommand.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sunwheel",
		Short:         "Sunwheel lays out mind maps as sunburst charts",
		Long:          `Sunwheel is a CLI tool for computing sunburst (radial partition) layouts from hierarchical mind maps, with weight-proportional sectors, fixed angular gaps, and concentric rings per depth level.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.hittestCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the layout cache for this invocation. --no-cache and an
// unresolvable cache directory both degrade to the null cache rather than
// failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if !noCache {
		if dir, err := cacheDir(); err == nil {
			return cache.NewFileCache(dir)
		}
	}
	return cache.NewNullCache(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, honoring XDG_CACHE_HOME and falling
// back to ~/.cache/sunwheel.
func cacheDir() (string, error) { return userDir("XDG_CACHE_HOME", ".cache") }

// configDir returns the config directory, honoring XDG_CONFIG_HOME and
// falling back to ~/.config/sunwheel.
func configDir() (string, error) { return userDir("XDG_CONFIG_HOME", ".config") }

func userDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats splits a comma-separated format list, trimming whitespace
// around each entry. Empty input means JSON.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
