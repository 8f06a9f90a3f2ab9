package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/buildinfo"
	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rnalayout"

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

	// Out receives command output. Err receives the spinner and
	// interactive prompts; logs go to the logger's writer.
	Out io.Writer
	Err io.Writer

	configFile string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rnalayout computes 2-D drawings of RNA secondary structures",
		Long: `rnalayout places every base of an RNA secondary structure on the plane.

Stems are drawn as ladders and loops as circles. Input is a molecule document
(JSON), a molecule library (TOML) or Vienna/FASTA-style dot-bracket text. The
output is a layout document with one coordinate per base.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/rnalayout/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	var backend cache.Cache = cache.NewNullCache()
	if !noCache {
		b, err := c.newCache(ctx)
		if err != nil {
			return nil, err
		}
		backend = b
	}
	return pipeline.NewRunner(backend, c.newKeyer(), c.Logger), nil
}

// newKeyer returns the key scheme for the configured cache. Redis applies the
// prefix to stored keys itself; the file cache gets it through the keys.
func (c *CLI) newKeyer() cache.Keyer {
	cfg := c.config.Cache
	if cfg.Prefix == "" || cfg.backend() == backendRedis {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
}

// newCache opens the cache backend selected by the [cache] section.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.config.Cache
	var backend cache.Cache
	switch cfg.backend() {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.redisConfig())
		if err != nil {
			return nil, err
		}
		backend = rc
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		backend = fc
	}
	if cfg.TTL.Duration > 0 {
		backend = ttlCache{Cache: backend, ttl: cfg.TTL.Duration}
	}
	return backend, nil
}

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// ttlCache replaces the pipeline's entry lifetimes with a configured one.
type ttlCache struct {
	cache.Cache
	ttl time.Duration
}

func (c ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}

func (c ttlCache) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(cache.Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// layoutOptions returns pipeline options seeded with the built-in defaults,
// ready to be bound to flags.
func layoutOptions() pipeline.Options {
	return pipeline.Options{
		PrimarySpacing: pipeline.DefaultPrimarySpacing,
		PairSpacing:    pipeline.DefaultPairSpacing,
	}
}

// addLayoutFlags binds the spacing and pseudoknot flags shared by layout and
// tree.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.PrimarySpacing, "primary-spacing", opts.PrimarySpacing, "distance between consecutive bases")
	cmd.Flags().Float64Var(&opts.PairSpacing, "pair-spacing", opts.PairSpacing, "distance between paired bases")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict, "reject pseudoknots instead of removing crossing pairs")
}
