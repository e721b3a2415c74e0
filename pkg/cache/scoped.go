package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple projects sharing one
// cache directory stay isolated.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(nil, "projA:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. The prefix is prepended to
// all generated keys. A nil inner keyer defaults to the standard scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey generates a prefixed validation report key.
func (k *ScopedKeyer) ReportKey(assetHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(assetHash, opts)
}
