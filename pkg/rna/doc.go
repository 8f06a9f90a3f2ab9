// Package rna provides the sequence and secondary-structure values that the
// layout engine consumes.
//
// # Sequence
//
// A [Sequence] is an ordered list of [Base] codes, one per position. Bases are
// nucleotides (A, C, G, U), cut markers separating strands, or Undefined for
// anything unrecognized:
//
//	seq, err := rna.ParseSequence("GACUAAAAGUCA", rna.ParseOptions{})
//	seq.String() // "GACUAAAAGUCA"
//
// # Structure
//
// A [Structure] records, for a molecule of length N, which position each base
// is paired with. Unpaired positions hold [Unpaired] (-1). Structures are
// immutable once built and always symmetric: [New] derives the symmetric
// closure of one-directional input and rejects out-of-range or self pairs.
//
//	s, err := rna.New([]int{-1, 13, 12, 11, 10, 9, -1, -1, -1, -1, -1, -1, -1, -1, -1})
//	s.Partner(1) // 13
//	s.Partner(13) // 1
//
// # Pseudoknots
//
// Two pairs (i,j) and (k,l) with i<k form a pseudoknot when i<k<j<l. The
// layout tree can only represent nested pairs, so [Structure.FilterPseudoknots]
// derives a nested subset. The policy keeps the earliest-opened pair: the
// structure is scanned left to right and a pair is dropped when it crosses a
// pair that was opened before it and kept.
//
// # Dot-bracket
//
// [ParseDotBracket] reads the conventional text notation where "(" and ")"
// mark paired bases and "." marks unpaired ones. The bracket kinds "[]", "{}"
// and "<>" express crossing pairs. [Structure.DotBracket] is its inverse.
package rna
