package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GridsKey returns the prefixed grids key.
func (k *ScopedKeyer) GridsKey(words []string, opts GridsKeyOpts) string {
	return k.prefix + k.inner.GridsKey(words, opts)
}

// RenderKey returns the prefixed render key. gridsKey is expected to carry
// the prefix already and is passed through unchanged.
func (k *ScopedKeyer) RenderKey(gridsKey, format string) string {
	return k.inner.RenderKey(gridsKey, format)
}
