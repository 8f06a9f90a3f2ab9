// Package layout computes 2-D coordinates for every base of an RNA secondary
// structure.
//
// # Overview
//
// The engine turns a nested pairing map into a tree and walks it twice:
//
//  1. Construction: positions are scanned left to right. Unpaired bases become
//     leaves, base pairs become [KindPair] nodes, and the contents of a loop
//     enclosed by a pair hang from a [KindJunction] placeholder.
//  2. Placement: every node receives a position, an incoming unit direction and
//     a rotation sign. A node with one child extends a straight run; a node
//     with several children spreads them on a circle whose circumference grows
//     with the number of children.
//  3. Extraction: coordinates are written into flat per-base arrays. The two
//     bases of a pair sit half a pair spacing either side of the pair node,
//     perpendicular to its direction.
//
// The result is the conventional "parallel rails for helices, circles for
// loops" diagram, produced in a single forward pass without relaxation.
//
// # Building a Layout
//
// [Build] is the one-call entry point:
//
//	res, err := layout.Build(pairs, len(pairs), 45, 45)
//	x, y := res.At(3)
//
// For repeated use, or to filter pseudoknots before building, create an
// [Engine]:
//
//	e, err := layout.NewEngine(
//	    layout.WithPrimarySpacing(30),
//	    layout.WithPairSpacing(20),
//	    layout.WithPseudoknotFiltering(),
//	)
//	res, err := e.Layout(structure)
//
// # Degenerate Structures
//
// A structure without pairs has no tree. Up to four bases are stacked on a
// vertical line; longer chains are spread evenly on one circle.
//
// # Errors
//
// Construction fails with MALFORMED_RANGE when pairs cross, which only happens
// when pseudoknots were not filtered. No partial result is ever returned.
//
// # Concurrency
//
// An Engine holds configuration only. Each call builds and discards its own
// tree, so one Engine may serve concurrent callers.
package layout
