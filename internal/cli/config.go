package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/pipeline"
)

// Cache backends accepted in [cache] backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional TOML configuration file.
//
//	[layout]
//	primary_spacing = 45.0
//	pair_spacing = 45.0
//	filter_pseudoknots = true
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "168h"
//	dir = "/var/cache/rnalayout"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	prefix = "rnalayout:"
//
//	[server]
//	addr = "localhost:8080"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout defaults. Zero values leave the built-in
// defaults in place.
type LayoutConfig struct {
	PrimarySpacing    float64 `toml:"primary_spacing"`
	PairSpacing       float64 `toml:"pair_spacing"`
	FilterPseudoknots *bool   `toml:"filter_pseudoknots"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       duration `toml:"ttl"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "36h" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// configPath returns $XDG_CONFIG_HOME/rnalayout/config.toml, falling back to
// ~/.config/rnalayout/config.toml.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the configuration at path. An empty path means the
// default location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	if c.Layout.PrimarySpacing < 0 || c.Layout.PairSpacing < 0 {
		return fmt.Errorf("layout spacing cannot be negative")
	}
	return nil
}

// backend returns the configured cache backend, defaulting to file.
func (c CacheConfig) backend() string {
	if c.Backend == "" {
		return backendFile
	}
	return c.Backend
}

// redisConfig converts the [cache] section for cache.NewRedisCache.
func (c CacheConfig) redisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.RedisAddr,
		Password: os.Getenv("RNALAYOUT_REDIS_PASSWORD"),
		DB:       c.RedisDB,
		Prefix:   c.Prefix,
	}
}

// applyLayout fills opts from the [layout] section for every option whose
// flag was not set explicitly on cmd.
func (c Config) applyLayout(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if c.Layout.PrimarySpacing > 0 && !flags.Changed("primary-spacing") {
		opts.PrimarySpacing = c.Layout.PrimarySpacing
	}
	if c.Layout.PairSpacing > 0 && !flags.Changed("pair-spacing") {
		opts.PairSpacing = c.Layout.PairSpacing
	}
	if c.Layout.FilterPseudoknots != nil && !flags.Changed("strict") {
		opts.Strict = !*c.Layout.FilterPseudoknots
	}
}
