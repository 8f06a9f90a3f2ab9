// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete parse → filter → layout pipeline. By
// centralizing this logic, every entry point applies the same defaults,
// validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: Validate the molecule document into a sequence and a structure
//  2. Layout: Remove pseudoknots (unless Strict is set) and compute coordinates
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and lay out a molecule:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Layout(ctx, document.Molecule{
//	    Sequence:  "GGGAAACCC",
//	    Structure: "(((...)))",
//	}, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Layout.Bounds)
//
// Run individual stages:
//
//	// Parse only
//	parsed, err := runner.Parse(ctx, mol, opts)
//
//	// Layout an already parsed molecule
//	doc, hit, err := runner.LayoutWithCacheInfo(ctx, parsed, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPrimarySpacing is the distance between consecutive bases.
	DefaultPrimarySpacing = layout.DefaultPrimarySpacing

	// DefaultPairSpacing is the distance between the bases of a pair.
	DefaultPairSpacing = layout.DefaultPairSpacing

	// DefaultMaxLength is the longest molecule the pipeline accepts. The
	// engine itself has no limit; this bounds the work one request can cause.
	DefaultMaxLength = 100_000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	PrimarySpacing float64 `json:"primary_spacing,omitempty"`
	PairSpacing    float64 `json:"pair_spacing,omitempty"`

	// Strict rejects structures with pseudoknots instead of removing the
	// crossing pairs before layout.
	Strict bool `json:"strict,omitempty"`

	// MaxLength bounds the molecule length. Zero means DefaultMaxLength.
	MaxLength int `json:"max_length,omitempty"`

	// Refresh skips cache reads; the result is still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Molecule is the validated input.
	Molecule document.Parsed

	// InputHash is the content hash used for cache keys.
	InputHash string

	// Layout is the output document.
	Layout document.Layout

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Length       int
	Pairs        int
	RemovedPairs int
	ParseTime    time.Duration
	LayoutTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PrimarySpacing == 0 {
		o.PrimarySpacing = DefaultPrimarySpacing
	}
	if o.PairSpacing == 0 {
		o.PairSpacing = DefaultPairSpacing
	}
	if o.MaxLength == 0 {
		o.MaxLength = DefaultMaxLength
	}
	if err := errors.ValidateSpacing("primary_spacing", o.PrimarySpacing); err != nil {
		return err
	}
	if err := errors.ValidateSpacing("pair_spacing", o.PairSpacing); err != nil {
		return err
	}
	if o.MaxLength < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "max_length cannot be negative")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns the cache key options for layout caching.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PrimarySpacing:    o.PrimarySpacing,
		PairSpacing:       o.PairSpacing,
		FilterPseudoknots: !o.Strict,
	}
}
