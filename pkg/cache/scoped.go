package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend without seeing each other's entries.
//
// Example usage:
//
//	// Keys for the staging server
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// FilterKey generates a prefixed key for filter result caching.
func (k *ScopedKeyer) FilterKey(structureHash string) string {
	return k.prefix + k.inner.FilterKey(structureHash)
}
