package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout runs the complete parse → layout pipeline with caching.
func (r *Runner) Layout(ctx context.Context, mol document.Molecule, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	parsed, err := r.Parse(ctx, mol, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Molecule = parsed
	result.InputHash = InputHash(parsed)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Length = parsed.Structure.Len()

	// Stage 2: Layout
	layoutStart := time.Now()
	doc, hit, err := r.LayoutWithCacheInfo(ctx, parsed, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = doc
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RemovedPairs = len(doc.RemovedPairs)
	result.Stats.Pairs = parsed.Structure.NumPairs() - len(doc.RemovedPairs)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"molecule", parsed.Name,
		"bases", result.Stats.Length,
		"pairs", result.Stats.Pairs,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Parse validates a molecule document.
func (r *Runner) Parse(ctx context.Context, mol document.Molecule, opts Options) (document.Parsed, error) {
	r.applyLogger(&opts)
	return Parse(ctx, mol, opts)
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, p document.Parsed, opts Options) (document.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return document.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(InputHash(p), opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := document.UnmarshalLayout(data)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
	}
	cacheHooks.OnCacheMiss(ctx, "layout")

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, p.Name, p.Structure.Len(), p.Structure.NumPairs())
	start := time.Now()
	doc, err := GenerateLayout(p, opts)
	hooks.OnLayoutComplete(ctx, p.Name, time.Since(start), err)
	if err != nil {
		return document.Layout{}, false, err
	}
	if n := len(doc.RemovedPairs); n > 0 {
		hooks.OnPseudoknotsRemoved(ctx, p.Name, n)
		opts.Logger.Debug("removed pseudoknots", "molecule", p.Name, "pairs", n)
	}

	// Cache the result
	if data, err := document.MarshalLayout(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return doc, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
