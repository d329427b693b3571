package cache

// ScopedKeyer namespaces another Keyer's keys under a fixed prefix,
// letting several deployments share one Redis instance:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key produced by inner. A nil inner
// falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BasisKey generates a prefixed key for a completed basis.
func (k *ScopedKeyer) BasisKey(problemHash string, opts BasisKeyOpts) string {
	return k.prefix + k.inner.BasisKey(problemHash, opts)
}
