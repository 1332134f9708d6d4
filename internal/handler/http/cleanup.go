package http

import (
	"context"
	"log/slog"
	"time"

	"yanyucloud-api/pkg/cache"
	"yanyucloud-api/pkg/ratelimit"
)

// StartMaintenance runs periodic housekeeping until ctx is cancelled: it
// purges stale rate-limit records, sweeps expired cache entries, and keeps
// the active-keys gauge current. Run it in its own goroutine.
func StartMaintenance(
	ctx context.Context,
	limiter *ratelimit.Limiter,
	rlConfig ratelimit.Config,
	store *cache.Cache,
	metrics ratelimit.MetricsRecorder,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(rlConfig.CleanupInterval)
	defer ticker.Stop()

	logger.Info("maintenance started",
		slog.Duration("interval", rlConfig.CleanupInterval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("maintenance stopped")
			return

		case <-ticker.C:
			removed := limiter.Cleanup(rlConfig.Window)
			swept := store.Sweep()
			active := limiter.KeyCount()
			if metrics != nil {
				metrics.SetActiveKeys(active)
			}
			logger.Debug("maintenance pass completed",
				slog.Int("rate_limit_records_removed", removed),
				slog.Int("cache_entries_swept", swept),
				slog.Int("active_keys", active),
				slog.Int64("limiter_memory_bytes", limiter.MemoryUsage()),
			)
		}
	}
}
