package mysql

import (
	"context"
	"fmt"
	"time"

	"dddkit/config"
	"dddkit/infrastructure/persistence/mysql/po"
	"dddkit/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// OutboxPublisher delivers a serialized integration event to the outside
// world (message broker, webhook, ...).
type OutboxPublisher interface {
	Publish(ctx context.Context, eventType, payload string) error
}

// LoggingOutboxPublisher logs events instead of delivering them.
// Stand-in publisher for environments without a broker.
type LoggingOutboxPublisher struct{}

func (p *LoggingOutboxPublisher) Publish(ctx context.Context, eventType, payload string) error {
	logger.Info("Outbox event published",
		zap.String("event_type", eventType),
		zap.String("payload", payload),
	)
	return nil
}

// outboxStore is the slice of OutboxRepository the worker needs.
type outboxStore interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error)
	MarkEventProcessing(ctx context.Context, eventID string) error
	MarkEventPublished(ctx context.Context, eventID string) error
	MarkEventFailed(ctx context.Context, eventID string, publishErr error, maxRetries int) error
}

// OutboxWorker polls the outbox table and publishes pending integration
// events. Publishing is rate limited to avoid flooding downstream consumers
// after an outage.
type OutboxWorker struct {
	store        outboxStore
	publisher    OutboxPublisher
	limiter      *rate.Limiter
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

func NewOutboxWorker(
	store *OutboxRepository,
	publisher OutboxPublisher,
	cfg config.WorkerConfig,
) (*OutboxWorker, error) {
	if store == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}
	if cfg.PublishRate <= 0 || cfg.PublishBurst <= 0 {
		return nil, fmt.Errorf("publish rate and burst must be positive")
	}

	return &OutboxWorker{
		store:        store,
		publisher:    publisher,
		limiter:      rate.NewLimiter(rate.Limit(cfg.PublishRate), cfg.PublishBurst),
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,
	}, nil
}

// Run blocks until ctx is canceled.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				logger.Error("Outbox batch processing failed", zap.Error(err))
			}
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) error {
	events, err := w.store.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := w.store.MarkEventProcessing(ctx, event.ID); err != nil {
			logger.Warn("Skip outbox event due to lock contention",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		if err := w.publisher.Publish(ctx, event.EventType, event.Payload); err != nil {
			if failErr := w.store.MarkEventFailed(ctx, event.ID, err, w.maxRetries); failErr != nil {
				logger.Error("Failed to mark outbox event as failed",
					zap.String("event_id", event.ID),
					zap.Error(failErr),
				)
			}
			continue
		}

		if err := w.store.MarkEventPublished(ctx, event.ID); err != nil {
			logger.Error("Failed to mark outbox event as published",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}
