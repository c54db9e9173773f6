package consumer

import (
	"context"
	"time"

	"hr-platform/internal/shared/cache"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LifecycleReader is the slice of kafkago.Reader this consumer needs.
type LifecycleReader interface {
	Config() kafkago.ReaderConfig
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// fetchErrorBackoff keeps a broken broker connection from spinning the
// fetch loop hot.
var fetchErrorBackoff = time.Second

// ConsumeCacheInvalidation drops the derived statistics views whenever a
// domain lifecycle event arrives. This replaces client-side polling: any
// write, from any process, pushes an invalidation instead of readers
// refreshing on a timer.
func ConsumeCacheInvalidation(
	ctx context.Context,
	reader LifecycleReader,
	invalidator *cache.Invalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.cache_invalidation")
	log.Info("cache invalidation consumer started", zap.String("topic", reader.Config().Topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("cache invalidation consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("cache invalidation consumer stopped")
				return
			case <-time.After(fetchErrorBackoff):
			}
			continue
		}

		invalidator.InvalidateStats(ctx)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("caches invalidated from lifecycle event",
			zap.String("topic", msg.Topic),
			zap.String("key", string(msg.Key)),
		)
	}
}
