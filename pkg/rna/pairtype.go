package rna

// PairType classifies the bases at the two ends of a pair. It is descriptive
// only and carries no energy model; consumers use it to style pairs.
type PairType int

// Pair types, ordered the way folding engines number them.
const (
	PairNonCanonical PairType = iota
	PairCG
	PairGC
	PairGU
	PairUG
	PairAU
	PairUA
)

// String returns the two-letter name, or "NC" for non-canonical pairs.
func (p PairType) String() string {
	switch p {
	case PairCG:
		return "CG"
	case PairGC:
		return "GC"
	case PairGU:
		return "GU"
	case PairUG:
		return "UG"
	case PairAU:
		return "AU"
	case PairUA:
		return "UA"
	default:
		return "NC"
	}
}

// IsWobble reports whether the pair is a G-U wobble.
func (p PairType) IsWobble() bool { return p == PairGU || p == PairUG }

// IsCanonical reports whether the pair is Watson-Crick or wobble.
func (p PairType) IsCanonical() bool { return p != PairNonCanonical }

// ClassifyPair returns the type of the pair formed by a (5' side) and b (3' side).
func ClassifyPair(a, b Base) PairType {
	switch {
	case a == Cytosine && b == Guanine:
		return PairCG
	case a == Guanine && b == Cytosine:
		return PairGC
	case a == Guanine && b == Uracil:
		return PairGU
	case a == Uracil && b == Guanine:
		return PairUG
	case a == Adenine && b == Uracil:
		return PairAU
	case a == Uracil && b == Adenine:
		return PairUA
	}
	return PairNonCanonical
}
