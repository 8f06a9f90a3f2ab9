package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and filter results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	out := c.printer()
	backend := c.config.Cache.backend()
	if backend == backendNone {
		out.info("Caching is disabled")
		return nil
	}

	store, err := c.newCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return fmt.Errorf("%s cache cannot be cleared", backend)
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	out.success("Cache cleared")
	out.keyValue("Backend", backend)
	out.keyValue("Location", c.cacheLocation())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached entries are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, a redis:// URL with the key prefix for Redis.
func (c *CLI) cacheLocation() string {
	cfg := c.config.Cache
	switch cfg.backend() {
	case backendNone:
		return backendNone
	case backendRedis:
		rc := cfg.redisConfig()
		addr, prefix := rc.Addr, rc.Prefix
		if addr == "" {
			addr = "localhost:6379"
		}
		if prefix == "" {
			prefix = "rnalayout:"
		}
		return fmt.Sprintf("redis://%s/%d (prefix %q)", addr, rc.DB, prefix)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	if cfg.Prefix != "" {
		return fmt.Sprintf("%s (prefix %q)", dir, cfg.Prefix)
	}
	return dir
}
