package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Keys for derived read-side views. Every write path that can change a view
// deletes its keys; readers repopulate them with their own TTL.
const (
	DashboardStatsKey   = "stats:dashboard"
	RecentActivityKey   = "stats:activity"
	DepartmentStatsKey  = "stats:departments"
	EmployeeListPrefix  = "employees:list:"
	EmployeeListPattern = EmployeeListPrefix + "*"
)

// Invalidator is the explicit cache service injected into the domain
// services. All methods tolerate a nil redis client so the domain logic
// stays runnable (and testable) without redis.
type Invalidator struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewInvalidator(rdb *redis.Client, logger ...*zap.Logger) *Invalidator {
	l := zap.L().Named("cache.invalidator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cache.invalidator")
	}
	return &Invalidator{rdb: rdb, logger: l}
}

// Invalidate deletes the given keys. Failures are logged, never surfaced:
// a stale cache entry expires on its own TTL anyway.
func (i *Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if i == nil || i.rdb == nil || len(keys) == 0 {
		return
	}
	if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
		i.logger.Error("cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}

// InvalidatePattern deletes every key matching a glob pattern, used for the
// per-query employee list entries.
func (i *Invalidator) InvalidatePattern(ctx context.Context, pattern string) {
	if i == nil || i.rdb == nil {
		return
	}

	iter := i.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := i.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			i.logger.Error("cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	if err := iter.Err(); err != nil {
		i.logger.Error("cache scan failed",
			zap.String("pattern", pattern),
			zap.Error(err),
		)
	}
}

// InvalidateStats clears every derived statistics view. Called from all
// employee, leave and department write paths.
func (i *Invalidator) InvalidateStats(ctx context.Context) {
	i.Invalidate(ctx, DashboardStatsKey, RecentActivityKey, DepartmentStatsKey)
	i.InvalidatePattern(ctx, EmployeeListPattern)
}
