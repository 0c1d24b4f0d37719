package shared

import "context"

// UnitOfWork 管理事务边界与聚合事件收集。
// 事务提交成功后，已注册聚合记录的领域事件才会对外发布。
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory 为每次用例执行创建独立的 UnitOfWork。
// UnitOfWork 自身携带已注册聚合的状态，不能跨请求共享。
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// IntegrationEventOutbox 集成事件发件箱。
// 映射产出的集成事件先落库（与业务写入同一事务），
// 再由后台分发器异步发布。
type IntegrationEventOutbox interface {
	SaveEvent(ctx context.Context, event IntegrationEvent) error
}
