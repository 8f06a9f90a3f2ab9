package rna

import (
	"slices"
	"testing"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []int
		want    []int
		wantErr errors.Code
	}{
		{
			name:  "empty",
			pairs: []int{},
			want:  []int{},
		},
		{
			name:  "symmetric input kept",
			pairs: []int{3, -1, -1, 0},
			want:  []int{3, -1, -1, 0},
		},
		{
			name:  "one-directional low side",
			pairs: []int{3, -1, -1, -1},
			want:  []int{3, -1, -1, 0},
		},
		{
			name:  "one-directional high side",
			pairs: []int{-1, -1, -1, 0},
			want:  []int{3, -1, -1, 0},
		},
		{
			name:  "conflict resolved by later entry",
			pairs: []int{3, -1, -1, 1},
			want:  []int{-1, 3, -1, 1},
		},
		{
			name:    "self pair",
			pairs:   []int{0},
			wantErr: errors.ErrCodeSelfPair,
		},
		{
			name:    "index too large",
			pairs:   []int{-1, 5},
			wantErr: errors.ErrCodeInvalidIndex,
		},
		{
			name:    "negative non-sentinel",
			pairs:   []int{-2, -1},
			wantErr: errors.ErrCodeInvalidIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.pairs)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New(%v) error = %v, want code %v", tt.pairs, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v) error = %v", tt.pairs, err)
			}
			if got := s.Pairs(); !slices.Equal(got, tt.want) {
				t.Errorf("New(%v).Pairs() = %v, want %v", tt.pairs, got, tt.want)
			}
		})
	}
}

func TestNewDoesNotModifyInput(t *testing.T) {
	in := []int{3, -1, -1, -1}
	if _, err := New(in); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(in, []int{3, -1, -1, -1}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestStructureSymmetry(t *testing.T) {
	s, err := New([]int{-1, 13, 12, 11, 10, 9, -1, -1, -1, -1, -1, -1, -1, -1, -1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < s.Len(); i++ {
		if j := s.Partner(i); j != Unpaired && s.Partner(j) != i {
			t.Errorf("Partner(%d) = %d but Partner(%d) = %d", i, j, j, s.Partner(j))
		}
	}
	if s.NumPairs() != 5 {
		t.Errorf("NumPairs() = %d, want 5", s.NumPairs())
	}
	want := []Pair{{1, 13}, {2, 12}, {3, 11}, {4, 10}, {5, 9}}
	if got := s.PairList(); !slices.Equal(got, want) {
		t.Errorf("PairList() = %v, want %v", got, want)
	}
}

func TestPartnerOutOfRange(t *testing.T) {
	s := Unstructured(3)
	for _, i := range []int{-1, 3, 100} {
		if got := s.Partner(i); got != Unpaired {
			t.Errorf("Partner(%d) = %d, want %d", i, got, Unpaired)
		}
	}
}

func TestPairsReturnsCopy(t *testing.T) {
	s, _ := New([]int{1, 0})
	p := s.Pairs()
	p[0] = -1
	if s.Partner(0) != 1 {
		t.Error("mutating Pairs() result changed the structure")
	}
}

func TestFromPairs(t *testing.T) {
	s, err := FromPairs(6, []Pair{{0, 5}, {1, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Pairs(), []int{5, 4, -1, -1, 1, 0}; !slices.Equal(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}

	if _, err := FromPairs(3, []Pair{{0, 3}}); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("FromPairs out of range error = %v, want %v", err, errors.ErrCodeInvalidIndex)
	}
	if _, err := FromPairs(3, []Pair{{1, 1}}); !errors.Is(err, errors.ErrCodeSelfPair) {
		t.Errorf("FromPairs self pair error = %v, want %v", err, errors.ErrCodeSelfPair)
	}
}

func TestIsNested(t *testing.T) {
	tests := []struct {
		name  string
		pairs []int
		want  bool
	}{
		{"no pairs", []int{-1, -1, -1}, true},
		{"hairpin", []int{5, 4, -1, -1, 1, 0}, true},
		{"siblings", []int{1, 0, 3, 2}, true},
		{"multiloop", []int{9, -1, 4, -1, 2, -1, 8, -1, 6, 0}, true},
		{"crossing", []int{2, 3, 0, 1}, false},
		{"h-type pseudoknot", []int{4, 5, 6, -1, 0, 1, 2}, false},
		{"kissing", []int{5, -1, 7, -1, -1, 0, -1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.pairs)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.IsNested(); got != tt.want {
				t.Errorf("IsNested() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPseudoknots(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []int
		want    []int
		dropped []Pair
	}{
		{
			name:  "nested unchanged",
			pairs: []int{5, 4, -1, -1, 1, 0},
			want:  []int{5, 4, -1, -1, 1, 0},
		},
		{
			name:    "earliest opened pair wins",
			pairs:   []int{2, 3, 0, 1},
			want:    []int{2, -1, 0, -1},
			dropped: []Pair{{1, 3}},
		},
		{
			name: "crossing helix dropped whole",
			// ((..[[..))..]]
			pairs:   []int{9, 8, -1, -1, 13, 12, -1, -1, 1, 0, -1, -1, 5, 4},
			want:    []int{9, 8, -1, -1, -1, -1, -1, -1, 1, 0, -1, -1, -1, -1},
			dropped: []Pair{{4, 13}, {5, 12}},
		},
		{
			name: "pair nested inside dropped pair is kept",
			// ( [ ) ( ) ]  -> (0,2) kept, (1,5) dropped, (3,4) kept
			pairs:   []int{2, 5, 0, 4, 3, 1},
			want:    []int{2, -1, 0, 4, 3, -1},
			dropped: []Pair{{1, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.pairs)
			if err != nil {
				t.Fatal(err)
			}
			f := s.FilterPseudoknots()
			if got := f.Pairs(); !slices.Equal(got, tt.want) {
				t.Errorf("FilterPseudoknots() = %v, want %v", got, tt.want)
			}
			if got := s.Pseudoknots(); !slices.Equal(got, tt.dropped) {
				t.Errorf("Pseudoknots() = %v, want %v", got, tt.dropped)
			}
			if !f.IsNested() {
				t.Error("filtered structure is not nested")
			}
			if !f.FilterPseudoknots().Equal(f) {
				t.Error("filtering is not idempotent")
			}
			if !slices.Equal(s.Pairs(), tt.pairs) {
				t.Error("FilterPseudoknots modified the original structure")
			}
		})
	}
}
