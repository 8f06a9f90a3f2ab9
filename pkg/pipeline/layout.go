package pipeline

import (
	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/layout"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the layout document for a parsed molecule.
//
// Unless opts.Strict is set, pseudoknotted pairs are removed first and listed
// in the document's RemovedPairs. With Strict, a structure with crossing
// pairs fails with MALFORMED_RANGE.
func GenerateLayout(p document.Parsed, opts Options) (document.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return document.Layout{}, err
	}

	s := p.Structure
	var removed []rna.Pair
	if !opts.Strict {
		removed = s.Pseudoknots()
		s = s.FilterPseudoknots()
	}

	engine, err := layout.NewEngine(
		layout.WithPrimarySpacing(opts.PrimarySpacing),
		layout.WithPairSpacing(opts.PairSpacing),
	)
	if err != nil {
		return document.Layout{}, err
	}
	res, err := engine.Layout(s)
	if err != nil {
		return document.Layout{}, err
	}

	return document.FromResult(document.Source{
		Name:           p.Name,
		Sequence:       p.Sequence,
		Structure:      s,
		PrimarySpacing: opts.PrimarySpacing,
		PairSpacing:    opts.PairSpacing,
		RemovedPairs:   removed,
	}, res), nil
}
