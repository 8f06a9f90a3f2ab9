package cache

import "strconv"

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the input identified by
	// inputHash, computed with opts.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// FilterKey returns the key for the pseudoknot filtering result of the
	// structure identified by structureHash.
	FilterKey(structureHash string) string
}

// LayoutKeyOpts holds every option that changes a layout.
type LayoutKeyOpts struct {
	PrimarySpacing    float64
	PairSpacing       float64
	FilterPseudoknots bool
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash,
		strconv.FormatFloat(opts.PrimarySpacing, 'g', -1, 64),
		strconv.FormatFloat(opts.PairSpacing, 'g', -1, 64),
		opts.FilterPseudoknots)
}

// FilterKey implements [Keyer].
func (DefaultKeyer) FilterKey(structureHash string) string {
	return hashKey("filter", structureHash)
}
