package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/internal/server"
	"github.com/sunwheel-labs/sunwheel/pkg/cache"
	"github.com/sunwheel-labs/sunwheel/pkg/document"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// serveOptions collects the serve command's flag values before merging with
// the config file.
type serveOptions struct {
	addr          string
	storeDir      string
	mongoURI      string
	mongoDatabase string
	redisAddr     string
	redisPassword string
	redisDB       int
	noCache       bool
	configFile    string
}

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var o serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout and document server",
		Long: `Run the HTTP layout and document server.

The server exposes the layout engine over HTTP for browser-based editors:
stateless layout and hit-test endpoints, plus stored documents with node
editing, undo/redo, and per-document layout.

Documents live in local JSON files by default; pass --mongo-uri to use a
MongoDB collection instead. Layout results are cached on disk by default;
pass --redis-addr to share a Redis cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	flags.StringVar(&o.storeDir, "store-dir", "", "document directory (default: ~/.config/sunwheel/documents)")
	flags.StringVar(&o.mongoURI, "mongo-uri", "", "MongoDB connection URI for document storage")
	flags.StringVar(&o.mongoDatabase, "mongo-database", "", "MongoDB database name (default sunwheel)")
	flags.StringVar(&o.redisAddr, "redis-addr", "", "Redis address for the shared layout cache")
	flags.StringVar(&o.redisPassword, "redis-password", "", "Redis password")
	flags.IntVar(&o.redisDB, "redis-db", 0, "Redis database number")
	flags.BoolVar(&o.noCache, "no-cache", false, "disable layout caching")
	flags.StringVar(&o.configFile, "config", "", "config file (default: ~/.config/sunwheel/sunwheel.toml)")

	return cmd
}

// runServe assembles the store, cache, and runner, then serves until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, o serveOptions) error {
	cfg, err := loadFileConfig(resolveConfigPath(o.configFile))
	if err != nil {
		return err
	}

	addr := firstNonEmpty(o.addr, cfg.Server.Addr, server.DefaultAddr)
	mongoURI := firstNonEmpty(o.mongoURI, cfg.Server.MongoURI)
	mongoDatabase := firstNonEmpty(o.mongoDatabase, cfg.Server.MongoDatabase, appName)
	redisAddr := firstNonEmpty(o.redisAddr, cfg.Server.RedisAddr)
	redisPassword := firstNonEmpty(o.redisPassword, cfg.Server.RedisPassword)
	redisDB := o.redisDB
	if redisDB == 0 {
		redisDB = cfg.Server.RedisDB
	}

	store, err := c.openServeStore(ctx, mongoURI, mongoDatabase, o.storeDir)
	if err != nil {
		return err
	}
	defer store.Close()

	layoutCache, err := c.openServeCache(ctx, o.noCache, redisAddr, redisPassword, redisDB)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(layoutCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(store, runner, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

// openServeStore picks MongoDB when a URI is configured, local files otherwise.
func (c *CLI) openServeStore(ctx context.Context, mongoURI, mongoDatabase, storeDir string) (document.Store, error) {
	if mongoURI != "" {
		store, err := document.NewMongoStore(ctx, mongoURI, mongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb document store", "database", mongoDatabase)
		return store, nil
	}

	store, err := openStore(storeDir)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using file document store", "dir", store.Dir())
	return store, nil
}

// openServeCache picks Redis when an address is configured, the local file
// cache otherwise.
func (c *CLI) openServeCache(ctx context.Context, noCache bool, redisAddr, redisPassword string, redisDB int) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr, redisPassword, redisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis layout cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}

// firstNonEmpty returns the first non-empty string, or "".
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
