package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several consumers can
// share one backend without seeing each other's entries. The HTTP server
// scopes its keys this way.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to the keys of inner.
// A nil inner uses the [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey returns the prefixed result key.
func (k *ScopedKeyer) ResultKey(grammarHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(grammarHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
