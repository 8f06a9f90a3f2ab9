package rna

import (
	"slices"
	"testing"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

func TestParseDotBracket(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"unpaired", "....", []int{-1, -1, -1, -1}, false},
		{"hairpin", "((..))", []int{5, 4, -1, -1, 1, 0}, false},
		{"adjacent pair", "()", []int{1, 0}, false},
		{"whitespace ignored", "(( .. ))\n", []int{5, 4, -1, -1, 1, 0}, false},
		{"cut is unpaired", "(&)", []int{2, -1, 0}, false},
		{"pseudoknot", "([)]", []int{2, 3, 0, 1}, false},
		{"all kinds", "([{<>}])", []int{7, 6, 5, 4, 3, 2, 1, 0}, false},

		{"unbalanced close", "())", nil, true},
		{"unclosed", "((.)", nil, true},
		{"mismatched kinds", "(]", nil, true},
		{"bad character", "(x)", nil, true},
		{"non-ascii", "(é)", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseDotBracket(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDotBracket(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidStructure) {
					t.Errorf("ParseDotBracket(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidStructure)
				}
				return
			}
			if got := s.Pairs(); len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
				t.Errorf("ParseDotBracket(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDotBracket(t *testing.T) {
	tests := []struct {
		name  string
		pairs []int
		want  string
	}{
		{"unpaired", []int{-1, -1}, ".."},
		{"hairpin", []int{5, 4, -1, -1, 1, 0}, "((..))"},
		{"pseudoknot", []int{2, 3, 0, 1}, "([)]"},
		{"hairpin with tails", []int{-1, 13, 12, 11, 10, 9, -1, -1, -1, -1, -1, -1, -1, -1, -1}, ".(((((...)))))."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.pairs)
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.DotBracket()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("DotBracket() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDotBracketRoundTrip(t *testing.T) {
	for _, in := range []string{"((..[[..))..]]", "..((..)).((..)).", "([{)]}"} {
		s, err := ParseDotBracket(in)
		if err != nil {
			t.Fatalf("ParseDotBracket(%q): %v", in, err)
		}
		out, err := s.DotBracket()
		if err != nil {
			t.Fatalf("DotBracket(): %v", err)
		}
		again, err := ParseDotBracket(out)
		if err != nil {
			t.Fatalf("ParseDotBracket(%q): %v", out, err)
		}
		if !again.Equal(s) {
			t.Errorf("round trip of %q via %q changed pairs", in, out)
		}
	}
}

func TestDotBracketTooManyLayers(t *testing.T) {
	// Five mutually crossing pairs: (0,5) (1,6) (2,7) (3,8) (4,9).
	pairs := []int{5, 6, 7, 8, 9, 0, 1, 2, 3, 4}
	s, err := New(pairs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.DotBracket(); !errors.Is(err, errors.ErrCodeInvalidStructure) {
		t.Errorf("DotBracket() error = %v, want %v", err, errors.ErrCodeInvalidStructure)
	}
}
