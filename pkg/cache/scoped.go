package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate cache
// namespaces to contexts that must not share entries (per-tenant server
// deployments, test isolation).
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArrangementKey generates a prefixed key for a placement result.
func (k *ScopedKeyer) ArrangementKey(prefsHash string, opts ArrangementKeyOpts) string {
	return k.prefix + k.inner.ArrangementKey(prefsHash, opts)
}

// LayoutKey generates a prefixed key for a resolution result.
func (k *ScopedKeyer) LayoutKey(arrangementHash, tracksHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(arrangementHash, tracksHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
