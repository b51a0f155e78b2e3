package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/cache"
)

// cacheCommand groups the layout-cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout result cache",
		Long: `Manage the on-disk layout result cache.

Cached layouts are keyed by mind-map content and engine parameters, so
entries never go stale; clearing is only needed to reclaim disk space.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layout results",
			RunE:  func(cmd *cobra.Command, args []string) error { return c.runCacheClear() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			RunE:  func(cmd *cobra.Command, args []string) error { return c.runCachePath() },
		},
	)

	return cmd
}

func (c *CLI) runCacheClear() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cache cleared")
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) runCachePath() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fmt.Println(dir)
	return nil
}
