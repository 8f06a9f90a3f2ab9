package rna

import (
	"strings"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// Base identifies the residue at one sequence position.
//
// The numeric values match the conventional nucleotide codes used by folding
// engines, so they can be exchanged with tools that store sequences as
// integer arrays.
type Base int

// Base codes.
const (
	Undefined Base = 0
	Adenine   Base = 1
	Cytosine  Base = 2
	Guanine   Base = 3
	Uracil    Base = 4
	Cut       Base = 19
)

// String returns the one-letter code: A, C, G, U, & for cuts and ? otherwise.
func (b Base) String() string {
	switch b {
	case Adenine:
		return "A"
	case Cytosine:
		return "C"
	case Guanine:
		return "G"
	case Uracil:
		return "U"
	case Cut:
		return "&"
	default:
		return "?"
	}
}

// IsNucleotide reports whether b is one of A, C, G or U.
func (b Base) IsNucleotide() bool {
	return b == Adenine || b == Cytosine || b == Guanine || b == Uracil
}

// ParseOptions controls how lenient [ParseBase] and [ParseSequence] are.
type ParseOptions struct {
	// DisallowCut rejects the strand separators '&', '-' and '+'.
	DisallowCut bool
	// DisallowUnknown rejects characters that are not nucleotides or cuts
	// instead of mapping them to Undefined.
	DisallowUnknown bool
}

// ParseBase converts a single character to a Base. Lowercase nucleotides are
// accepted.
func ParseBase(r rune, opts ParseOptions) (Base, error) {
	switch r {
	case 'A', 'a':
		return Adenine, nil
	case 'C', 'c':
		return Cytosine, nil
	case 'G', 'g':
		return Guanine, nil
	case 'U', 'u':
		return Uracil, nil
	case '&', '-', '+':
		if opts.DisallowCut {
			return Undefined, errors.New(errors.ErrCodeInvalidSequence, "bad nucleotide %q", r)
		}
		return Cut, nil
	}
	if opts.DisallowUnknown {
		return Undefined, errors.New(errors.ErrCodeInvalidSequence, "bad nucleotide %q", r)
	}
	return Undefined, nil
}

// Sequence is an immutable ordered list of bases.
type Sequence struct {
	bases []Base
}

// NewSequence copies bases into a new Sequence.
func NewSequence(bases []Base) Sequence {
	return Sequence{bases: append([]Base(nil), bases...)}
}

// ParseSequence reads a sequence string. Whitespace is ignored so that
// sequences wrapped over several lines can be passed directly.
func ParseSequence(s string, opts ParseOptions) (Sequence, error) {
	bases := make([]Base, 0, len(s))
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b, err := ParseBase(r, opts)
		if err != nil {
			return Sequence{}, errors.Wrap(errors.ErrCodeInvalidSequence, err, "position %d", i)
		}
		bases = append(bases, b)
	}
	return Sequence{bases: bases}, nil
}

// Len returns the number of positions.
func (s Sequence) Len() int { return len(s.bases) }

// At returns the base at position i.
func (s Sequence) At(i int) Base { return s.bases[i] }

// Bases returns a copy of the underlying codes.
func (s Sequence) Bases() []Base { return append([]Base(nil), s.bases...) }

// String returns the one-letter representation of the sequence.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s.bases))
	for _, base := range s.bases {
		b.WriteString(base.String())
	}
	return b.String()
}

// Cuts returns the positions of strand separators, in order.
func (s Sequence) Cuts() []int {
	var cuts []int
	for i, b := range s.bases {
		if b == Cut {
			cuts = append(cuts, i)
		}
	}
	return cuts
}
