// Package observability lets a binary observe export runs and measurement
// cache traffic without the export packages depending on a logging or
// metrics backend.
//
// Two hook sets exist, ExportHooks and CacheHooks. Both default to no-ops and
// are replaced once at startup:
//
//	observability.SetExportHooks(myHooks{})
//
// pkg/pipeline reports each export step and pkg/animate reports measurement
// cache hits, misses and writes. The takitaro binary installs log-backed hooks
// when run with --verbose.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export pipeline.
type ExportHooks interface {
	// OnStepStart is called before step index (0-based among emitted steps)
	// is processed.
	OnStepStart(ctx context.Context, index int, fileName string)

	// OnPathsMeasured is called after the paths of a step's top layer were
	// measured. total is the summed animatable length.
	OnPathsMeasured(ctx context.Context, layerID string, paths int, total float64)

	// OnStepComplete is called after the step's file was written, or with
	// the error that aborted it.
	OnStepComplete(ctx context.Context, index int, fileName string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnStepStart(context.Context, int, string)                          {}
func (NoopExportHooks) OnPathsMeasured(context.Context, string, int, float64)             {}
func (NoopExportHooks) OnStepComplete(context.Context, int, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks replaces the export hooks. A nil h is ignored.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	cacheHooks = NoopCacheHooks{}
}
