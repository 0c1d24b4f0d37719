package mysql

import (
	"dddkit/domain/shared"
	"dddkit/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory creates per-use-case UnitOfWork instances sharing one
// database handle, event publisher and retry policy.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, publisher shared.DomainEventPublisher, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		publisher:   publisher,
		retryConfig: retryConfig,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db, f.publisher)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
