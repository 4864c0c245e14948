package cli

import (
	"context"
	"time"

	"github.com/matzehuels/takitaro/pkg/observability"
)

// logHooks reports export and cache events to the logger attached to the
// event's context.
type logHooks struct{}

// InstallHooks registers debug-level event logging with the observability
// registry. main calls it when --verbose is set.
func InstallHooks() {
	observability.SetExportHooks(logHooks{})
	observability.SetCacheHooks(logHooks{})
}

func (logHooks) OnStepStart(ctx context.Context, index int, fileName string) {
	loggerFromContext(ctx).Debug("step started", "step", index, "file", fileName)
}

func (logHooks) OnPathsMeasured(ctx context.Context, layerID string, paths int, total float64) {
	loggerFromContext(ctx).Debug("paths measured", "layer", layerID, "paths", paths, "length", total)
}

func (logHooks) OnStepComplete(ctx context.Context, index int, fileName string, d time.Duration, err error) {
	logger := loggerFromContext(ctx)
	if err != nil {
		logger.Debug("step failed", "step", index, "file", fileName, "err", err)
		return
	}
	logger.Debug("step complete", "step", index, "file", fileName, "duration", d.Round(time.Microsecond))
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.ExportHooks = logHooks{}
	_ observability.CacheHooks  = logHooks{}
)
