package mysql

import (
	"context"
	"fmt"

	"dddkit/domain/shared"
	"dddkit/infrastructure/persistence"
	"dddkit/infrastructure/persistence/retry"
	"dddkit/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork implements the Unit of Work pattern with GORM.
// It manages the transaction boundary and publishes domain events from
// registered aggregates to the in-process event bus after a successful
// commit. Integration events take a different path: the application layer
// writes them to the outbox inside the transaction.
type UnitOfWork struct {
	db          *gorm.DB
	publisher   shared.DomainEventPublisher
	aggregates  []shared.AggregateRoot
	retryConfig retry.Config
}

// NewUnitOfWork creates a new UnitOfWork instance.
// publisher may be nil, in which case domain events are dropped after commit.
func NewUnitOfWork(db *gorm.DB, publisher shared.DomainEventPublisher) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		publisher:   publisher,
		aggregates:  make([]shared.AggregateRoot, 0),
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs the business logic inside a database transaction:
// 1. Begins a transaction and injects it into context for repositories
// 2. Executes the business function
// 3. Commits on success, rolls back on error
// 4. Publishes domain events from registered aggregates after commit
// 5. Automatically retries retryable errors (concurrent modification, deadlocks)
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		// Reset aggregates for this attempt
		u.aggregates = make([]shared.AggregateRoot, 0)

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		// The transaction is durable at this point. Event publishing
		// failures are logged, not surfaced: handlers run at-most-once
		// and must not undo a committed change.
		u.publishCollectedEvents()

		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

func (u *UnitOfWork) publishCollectedEvents() {
	if u.publisher == nil {
		return
	}

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if err := u.publisher.Publish(event); err != nil {
				logger.Error("Failed to publish domain event after commit",
					zap.String("event", event.EventName()),
					zap.String("aggregate_id", event.GetAggregateID()),
					zap.Error(err),
				)
			}
		}
	}
}

// RegisterNew registers a newly created aggregate root for event publishing
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event publishing
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a deleted aggregate root for event publishing
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
