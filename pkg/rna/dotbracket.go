package rna

import (
	"strings"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// bracketKinds lists the bracket pairs in the order crossing layers use them.
var bracketKinds = [...][2]byte{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}

// ParseDotBracket reads a structure in dot-bracket notation. '.' and '&'
// (strand cut) are unpaired positions; each bracket kind is matched
// independently so crossing pairs may use different kinds. Whitespace is
// ignored.
func ParseDotBracket(s string) (Structure, error) {
	var pairs []int
	var stacks [len(bracketKinds)][]int

	pos := 0
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case '.', '&':
			pairs = append(pairs, Unpaired)
			pos++
			continue
		}

		k, closing, ok := bracketKind(r)
		if !ok {
			return Structure{}, errors.New(errors.ErrCodeInvalidStructure,
				"unexpected character %q at position %d", r, pos)
		}
		if closing {
			top := len(stacks[k]) - 1
			if top < 0 {
				return Structure{}, errors.New(errors.ErrCodeInvalidStructure,
					"unbalanced %q at position %d", r, pos)
			}
			pairs[stacks[k][top]] = pos
			stacks[k] = stacks[k][:top]
		} else {
			stacks[k] = append(stacks[k], pos)
		}
		pairs = append(pairs, Unpaired)
		pos++
	}

	for k, st := range stacks {
		if len(st) > 0 {
			return Structure{}, errors.New(errors.ErrCodeInvalidStructure,
				"unclosed %q at position %d", bracketKinds[k][0], st[len(st)-1])
		}
	}
	return New(pairs)
}

// DotBracket returns the dot-bracket notation of s. Nested pairs use "()";
// pairs that cross them are peeled into further layers written with "[]",
// "{}" and "<>". A structure needing more layers fails with INVALID_STRUCTURE.
func (s Structure) DotBracket() (string, error) {
	out := []byte(strings.Repeat(".", len(s.pairs)))
	rest := s.pairs
	for layer := 0; ; layer++ {
		kept, dropped := splitNested(rest)
		if layer >= len(bracketKinds) {
			if hasPairs(kept) {
				return "", errors.New(errors.ErrCodeInvalidStructure,
					"structure needs more than %d bracket kinds", len(bracketKinds))
			}
			break
		}
		for i, j := range kept {
			if j > i {
				out[i] = bracketKinds[layer][0]
				out[j] = bracketKinds[layer][1]
			}
		}
		if len(dropped) == 0 {
			break
		}
		rest = unpairedSlice(len(s.pairs))
		for _, p := range dropped {
			rest[p.I], rest[p.J] = p.J, p.I
		}
	}
	return string(out), nil
}

// bracketKind returns the layer of bracket r and whether it closes a pair.
func bracketKind(r rune) (layer int, closing bool, ok bool) {
	for k, kind := range bracketKinds {
		switch r {
		case rune(kind[0]):
			return k, false, true
		case rune(kind[1]):
			return k, true, true
		}
	}
	return 0, false, false
}

func hasPairs(pairs []int) bool {
	for _, p := range pairs {
		if p != Unpaired {
			return true
		}
	}
	return false
}
