package cache

import (
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/application/report"
	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// NewReportCache picks the cache backend from configuration: Redis when
// enabled and reachable, otherwise the in-memory cache. Report data is
// recomputable, so a degraded cache is never fatal.
func NewReportCache(cfg config.RedisConfig, logger *zap.Logger) report.Cache {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory report cache")
		return NewInMemoryReportCache()
	}

	redisCache, err := NewRedisReportCache(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory report cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryReportCache()
	}

	logger.Info("Using Redis report cache", zap.String("addr", cfg.Addr()))
	return redisCache
}

var _ report.Cache = (*RedisReportCache)(nil)
var _ report.Cache = (*InMemoryReportCache)(nil)
