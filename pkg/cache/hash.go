package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer builds cache keys.
type Keyer interface {
	// MeasurementKey returns the key for the measurement of path data d.
	MeasurementKey(d string) string
}

// DefaultKeyer keys measurements as "measure:<sha256 of d>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MeasurementKey implements Keyer.
func (DefaultKeyer) MeasurementKey(d string) string {
	return "measure:" + Hash([]byte(d))
}
