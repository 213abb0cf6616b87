package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadim-stepanov/grid/pkg/api"
	"github.com/vadim-stepanov/grid/pkg/cache"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

The serve command starts an HTTP server exposing the pipeline:

  POST /v1/arrange  run the placement pass for a spec
  POST /v1/layout   run the full pipeline and return layout + artifacts
  GET  /healthz     liveness probe

Specs are sent inline as spec_toml in the request body. Results are
cached in memory by default; pass --redis for a shared cache across
instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache, e.g. localhost:6379")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, serveKeyer(redisAddr), c.Logger)
	defer runner.Close()

	server := api.NewServer(api.Config{
		Addr:   addr,
		Runner: runner,
		Logger: c.Logger,
	})
	return server.ListenAndServe(ctx)
}

// serveCache picks the cache backend for the server: redis when an
// address is given, otherwise process-local memory.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr, os.Getenv("GRID_REDIS_PASSWORD"), 0)
	}
	return cache.NewMemoryCache(), nil
}

// serveKeyer picks the cache keyer. Redis instances are often shared
// with other applications, so keys get an application namespace there;
// the in-process backends are ours alone.
func serveKeyer(redisAddr string) cache.Keyer {
	if redisAddr != "" {
		return cache.NewScopedKeyer(nil, appName+":")
	}
	return nil
}
