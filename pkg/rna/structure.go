package rna

import (
	"slices"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// Unpaired is the partner value of a base that is not bonded to any other.
const Unpaired = -1

// Pair is a single base pair with I < J.
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Structure is an immutable, symmetric pairing map.
//
// The zero value is a valid structure of length zero.
type Structure struct {
	pairs []int
}

// New validates pairs and returns the symmetric structure they describe.
//
// pairs[i] is the index base i is paired with, or [Unpaired]. One-directional
// entries are completed so that pairs[i] = j implies pairs[j] = i. When two
// entries disagree, entries are applied in ascending index order and a later
// entry overwrites an earlier one, unpairing the displaced partners.
//
// New fails with INVALID_INDEX when an entry lies outside [0, len(pairs)) and is
// not Unpaired, and with SELF_PAIR when a base claims itself as partner. The
// input slice is not modified.
func New(pairs []int) (Structure, error) {
	n := len(pairs)
	for i, p := range pairs {
		if p == Unpaired {
			continue
		}
		if p < 0 || p >= n {
			return Structure{}, errors.New(errors.ErrCodeInvalidIndex,
				"base %d paired with %d, outside [0, %d)", i, p, n)
		}
		if p == i {
			return Structure{}, errors.New(errors.ErrCodeSelfPair, "base %d is paired with itself", i)
		}
	}

	sym := unpairedSlice(n)
	for i, p := range pairs {
		if p == Unpaired || sym[i] == p {
			continue
		}
		if q := sym[i]; q != Unpaired {
			sym[q] = Unpaired
		}
		if q := sym[p]; q != Unpaired {
			sym[q] = Unpaired
		}
		sym[i] = p
		sym[p] = i
	}
	return Structure{pairs: sym}, nil
}

// FromPairs builds a structure of the given length from an explicit pair list.
// The same validation as [New] applies; a base listed in two pairs keeps the
// later one.
func FromPairs(length int, list []Pair) (Structure, error) {
	if length < 0 {
		return Structure{}, errors.New(errors.ErrCodeInvalidInput, "length cannot be negative")
	}
	pairs := unpairedSlice(length)
	for _, p := range list {
		for _, idx := range []int{p.I, p.J} {
			if idx < 0 || idx >= length {
				return Structure{}, errors.New(errors.ErrCodeInvalidIndex,
					"pair (%d, %d) outside [0, %d)", p.I, p.J, length)
			}
		}
		if p.I == p.J {
			return Structure{}, errors.New(errors.ErrCodeSelfPair, "base %d is paired with itself", p.I)
		}
		pairs[p.I] = p.J
	}
	return New(pairs)
}

// Unstructured returns a structure of the given length with no pairs.
func Unstructured(length int) Structure {
	return Structure{pairs: unpairedSlice(length)}
}

// Len returns the number of positions.
func (s Structure) Len() int { return len(s.pairs) }

// Partner returns the index base i is paired with, or [Unpaired].
// It returns Unpaired for indices outside the structure.
func (s Structure) Partner(i int) int {
	if i < 0 || i >= len(s.pairs) {
		return Unpaired
	}
	return s.pairs[i]
}

// IsPaired reports whether base i has a partner.
func (s Structure) IsPaired(i int) bool { return s.Partner(i) != Unpaired }

// Pairs returns a copy of the pairing array.
func (s Structure) Pairs() []int { return slices.Clone(s.pairs) }

// PairList returns every pair once, ordered by opening index.
func (s Structure) PairList() []Pair {
	var out []Pair
	for i, j := range s.pairs {
		if j > i {
			out = append(out, Pair{I: i, J: j})
		}
	}
	return out
}

// NumPairs returns the number of base pairs.
func (s Structure) NumPairs() int {
	n := 0
	for i, j := range s.pairs {
		if j > i {
			n++
		}
	}
	return n
}

// Equal reports whether both structures have identical pairings.
func (s Structure) Equal(o Structure) bool { return slices.Equal(s.pairs, o.pairs) }

// IsNested reports whether no two pairs cross.
func (s Structure) IsNested() bool {
	_, dropped := splitNested(s.pairs)
	return len(dropped) == 0
}

// Pseudoknots returns the pairs [Structure.FilterPseudoknots] would remove.
func (s Structure) Pseudoknots() []Pair {
	_, dropped := splitNested(s.pairs)
	return dropped
}

// FilterPseudoknots returns a nested copy of s. Pairs are visited in order of
// their opening index and a pair is dropped when it crosses a pair kept
// before it. Filtering a nested structure returns an equal structure.
func (s Structure) FilterPseudoknots() Structure {
	kept, _ := splitNested(s.pairs)
	return Structure{pairs: kept}
}

// splitNested scans pairs left to right keeping a stack of the closing
// indices of kept, still-open pairs. A pair opening at i with partner j is
// kept iff it closes before the innermost open pair.
func splitNested(pairs []int) (kept []int, dropped []Pair) {
	kept = unpairedSlice(len(pairs))
	var open []int
	for i, j := range pairs {
		if top := len(open) - 1; top >= 0 && open[top] == i {
			open = open[:top]
			continue
		}
		if j <= i {
			continue
		}
		if top := len(open) - 1; top < 0 || j < open[top] {
			kept[i], kept[j] = j, i
			open = append(open, j)
		} else {
			dropped = append(dropped, Pair{I: i, J: j})
		}
	}
	return kept, dropped
}

func unpairedSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = Unpaired
	}
	return s
}
