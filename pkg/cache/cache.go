// Package cache memoises expensive, deterministic results between runs.
//
// The export pipeline stores path measurements keyed by a hash of the path
// data, so re-exporting an unchanged drawing skips curve flattening.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for CLI usage
//   - [NullCache]: never stores anything, used with --no-cache and in tests
//
// # Keys
//
// Keys come from a [Keyer]. [ScopedKeyer] prefixes every key, which lets a
// new measurement format invalidate old entries without deleting them.
package cache

import (
	"context"
	"time"
)

// MeasurementTTL is how long a path measurement stays valid.
const MeasurementTTL = 30 * 24 * time.Hour

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
