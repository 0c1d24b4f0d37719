package mocks

import (
	"context"

	"dddkit/domain/shared"
)

// MockUnitOfWork runs the business function without a real transaction.
// Domain events of registered aggregates are published after the function
// succeeds, matching the commit semantics of the MySQL implementation.
type MockUnitOfWork struct {
	publisher  shared.DomainEventPublisher
	aggregates []shared.AggregateRoot
}

func NewMockUnitOfWork(publisher shared.DomainEventPublisher) *MockUnitOfWork {
	return &MockUnitOfWork{
		publisher:  publisher,
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	if err := fn(ctx); err != nil {
		return err
	}

	if u.publisher != nil {
		for _, agg := range u.aggregates {
			for _, event := range agg.PullEvents() {
				_ = u.publisher.Publish(event)
			}
		}
	}

	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// MockUnitOfWorkFactory creates MockUnitOfWork instances sharing one publisher.
type MockUnitOfWorkFactory struct {
	publisher shared.DomainEventPublisher
}

func NewMockUnitOfWorkFactory(publisher shared.DomainEventPublisher) *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{publisher: publisher}
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	return NewMockUnitOfWork(f.publisher)
}

var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
)
