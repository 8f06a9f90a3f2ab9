package layout

import (
	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// Default spacings, in layout units.
const (
	DefaultPrimarySpacing = 45.0
	DefaultPairSpacing    = 45.0
)

// Engine computes layouts with a fixed configuration. The zero value is not
// usable; create engines with [NewEngine].
type Engine struct {
	primary          float64
	pair             float64
	maxDepth         int
	filterPseudoknot bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithPrimarySpacing sets the distance between consecutive bases along the
// backbone.
func WithPrimarySpacing(v float64) Option {
	return func(e *Engine) { e.primary = v }
}

// WithPairSpacing sets the distance between the two bases of a pair.
func WithPairSpacing(v float64) Option {
	return func(e *Engine) { e.pair = v }
}

// WithMaxDepth bounds the nesting depth accepted by the engine.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// WithPseudoknotFiltering removes pseudoknotted pairs before building the
// tree. Without it, crossing pairs fail with MALFORMED_RANGE.
func WithPseudoknotFiltering() Option {
	return func(e *Engine) { e.filterPseudoknot = true }
}

// NewEngine returns an engine configured by opts. Spacings must be positive
// and finite; the depth bound must be positive.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		primary:  DefaultPrimarySpacing,
		pair:     DefaultPairSpacing,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := errors.ValidateSpacing("primary spacing", e.primary); err != nil {
		return nil, err
	}
	if err := errors.ValidateSpacing("pair spacing", e.pair); err != nil {
		return nil, err
	}
	if e.maxDepth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "max depth must be positive, got %d", e.maxDepth)
	}
	return e, nil
}

// PrimarySpacing returns the configured backbone spacing.
func (e *Engine) PrimarySpacing() float64 { return e.primary }

// PairSpacing returns the configured pair spacing.
func (e *Engine) PairSpacing() float64 { return e.pair }

// Tree builds and places the layout tree for s without extracting
// coordinates. It returns nil for a structure without pairs.
func (e *Engine) Tree(s rna.Structure) (*Node, error) {
	root, err := buildTree(e.prepare(s).Pairs(), e.maxDepth)
	if err != nil || root == nil {
		return nil, err
	}
	e.placer().place(root, Point{}, Point{0, 1}, Clockwise)
	return root, nil
}

// Layout computes coordinates for every base of s.
func (e *Engine) Layout(s rna.Structure) (Result, error) {
	root, err := e.Tree(s)
	if err != nil {
		return Result{}, err
	}
	res := newResult(s.Len())
	if root == nil {
		e.placer().placeUnstructured(res)
	} else {
		res.extract(root, e.pair)
	}
	if err := res.finish(); err != nil {
		return Result{}, err
	}
	return *res, nil
}

func (e *Engine) prepare(s rna.Structure) rna.Structure {
	if e.filterPseudoknot {
		return s.FilterPseudoknots()
	}
	return s
}

func (e *Engine) placer() placer {
	return placer{primary: e.primary, pair: e.pair}
}

// Build lays out a molecule of the given length from a pairing map, where
// pairs[i] is the partner of base i or -1. Pairs are symmetrized, validated and
// must not cross.
func Build(pairs []int, length int, primary, pair float64) (Result, error) {
	if len(pairs) != length {
		return Result{}, errors.New(errors.ErrCodeLengthMismatch,
			"pairing map has %d entries for a sequence of length %d", len(pairs), length)
	}
	s, err := rna.New(pairs)
	if err != nil {
		return Result{}, err
	}
	e, err := NewEngine(WithPrimarySpacing(primary), WithPairSpacing(pair))
	if err != nil {
		return Result{}, err
	}
	return e.Layout(s)
}
