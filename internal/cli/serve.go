package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/observability"
	"github.com/matzehuels/rnalayout/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		maxBody int64
		noCache bool
	)
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Endpoints:
  POST /v1/layout   molecule JSON in, layout JSON out
  POST /v1/filter   structure in, pseudoknot-free structure out
  GET  /healthz     liveness probe
  GET  /version     build information

Spacing flags set the defaults for requests that do not name their own. The
cache backend comes from the [cache] section of the config file; use a Redis
backend to share results between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.applyLayout(cmd, &opts)
			if !cmd.Flags().Changed("addr") && c.config.Server.Addr != "" {
				addr = c.config.Server.Addr
			}
			return c.runServe(cmd.Context(), server.Config{
				Addr:           addr,
				MaxBodyBytes:   maxBody,
				RequestTimeout: timeout,
				Defaults:       opts,
			}, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, noCache bool) error {
	check := cfg.Defaults
	if err := check.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
		defer observability.Reset()
	}

	srv := server.New(runner, c.Logger, cfg)
	c.Logger.Info("starting server", "addr", srv.Addr(), "cache", c.cacheBackendName(noCache))
	return srv.ListenAndServe(ctx)
}

func (c *CLI) cacheBackendName(noCache bool) string {
	if noCache {
		return backendNone
	}
	return c.config.Cache.backend()
}
