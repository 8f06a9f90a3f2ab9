// Package document defines the file formats rnalayout reads and writes.
//
// # Molecule Input
//
// A molecule is a sequence plus its secondary structure. JSON documents carry
// one molecule:
//
//	{
//	  "name": "tRNA fragment",
//	  "sequence": "GCGGAUUUAGCUCAG",
//	  "structure": ".(((((...)))))."
//	}
//
// The structure may be given in dot-bracket notation ("structure") or as a
// partner array ("pairs", -1 for unpaired bases), but not both. When the
// sequence is omitted every base is undefined and the length follows the
// structure.
//
// # Libraries
//
// TOML libraries hold several molecules:
//
//	title = "Hairpins"
//
//	[[molecule]]
//	name = "short"
//	sequence = "GGGAAACCC"
//	structure = "(((...)))"
//
// # Vienna Text
//
// [ParseVienna] reads the text format produced by common folding tools: an
// optional ">name" header, a sequence line and a dot-bracket line. A trailing
// energy annotation such as " (-3.40)" is ignored.
//
// # Layout Output
//
// [Layout] is the JSON document written for a computed layout. It lists one
// entry per base with its coordinates, partner and rotation sign, plus the
// bounding box. The document ID is derived from the input and the spacings,
// so identical requests produce identical IDs.
package document
