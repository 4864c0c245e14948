package cache

// ScopedKeyer wraps a Keyer with a prefix.
//
// The CLI scopes keys by measurement format version, so entries written by
// an older release are never read back:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v2:")
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

// MeasurementKey generates a prefixed key for a path measurement.
func (k *ScopedKeyer) MeasurementKey(d string) string {
	return k.prefix + k.inner.MeasurementKey(d)
}
