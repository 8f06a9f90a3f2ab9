// Package pkg provides the core libraries for rnalayout, which draws RNA
// secondary structures in the plane.
//
// # Overview
//
// A secondary structure is a set of nested base pairs. rnalayout turns it
// into one coordinate per base: stems become ladders of pairs, loops become
// circles. The pkg directory is organized into four main areas:
//
//  1. [rna] and [layout] - Domain logic (structures, tree construction, placement)
//  2. [document] - Wire formats for molecules and layouts
//  3. [pipeline] - Orchestration (parse → filter → layout) with caching
//  4. [cache], [observability], [server] - Infrastructure
//
// # Architecture
//
// The typical data flow through rnalayout:
//
//	Molecule document / Vienna text / TOML library
//	         ↓
//	    [document] package (decode, validate)
//	         ↓
//	    [rna] package (sequence + pairing map, pseudoknot removal)
//	         ↓
//	    [layout] package (layout tree → coordinates)
//	         ↓
//	    layout JSON
//
// # Quick Start
//
// Lay out a hairpin:
//
//	import "github.com/matzehuels/rnalayout/pkg/layout"
//
//	res, err := layout.Build([]int{5, 4, -1, -1, 1, 0}, 6,
//	    layout.DefaultPrimarySpacing, layout.DefaultPairSpacing)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := 0; i < res.Len(); i++ {
//	    x, y := res.At(i)
//	    fmt.Printf("%d: (%.1f, %.1f)\n", i, x, y)
//	}
//
// # Main Packages
//
// [rna] - Bases, sequences and pairing maps. Parses dot-bracket notation,
// symmetrizes pairings, and removes pseudoknots keeping the earliest-opened
// pair of every crossing set.
//
// [layout] - The layout engine. Builds a tree of pairs, unpaired bases and
// junctions, places it with loops drawn as circles, and extracts per-base
// coordinates and bounds. Also exports the tree as DOT or SVG for debugging.
//
// [document] - Molecule input (JSON, TOML libraries, Vienna text) and the
// layout output document.
//
// [pipeline] - The parse → filter → layout pipeline shared by the CLI and the
// HTTP API. Ensures consistent defaults, validation and caching.
//
// [cache] - File, Redis and null cache backends with content-addressed keys.
//
// [errors] - Coded errors used across the module.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [server] - The HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis tests run when RNALAYOUT_TEST_REDIS names a reachable server.
//
// [rna]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/rna
// [layout]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/layout
// [document]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/rnalayout/pkg/server
package pkg
