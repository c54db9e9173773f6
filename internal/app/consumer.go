package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hr-platform/internal/events"
	"hr-platform/internal/messaging/kafka/consumer"
	"hr-platform/internal/shared/cache"
	"hr-platform/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer subscribes to the three lifecycle topics and drops the
// cached statistics views when any of them produces.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	invalidator := cache.NewInvalidator(redisClient)

	topics := []string{
		events.EmployeeLifecycleTopic,
		events.LeaveLifecycleTopic,
		events.DepartmentLifecycleTopic,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, topic := range topics {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "hr-platform-cache-invalidation",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
		defer reader.Close()

		go consumer.ConsumeCacheInvalidation(ctx, reader, invalidator, logger)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
