package mapper

import (
	"context"
	"reflect"
	"sync"

	"dddkit/domain/shared"
	"dddkit/pkg/logger"

	"go.uber.org/zap"
)

// capabilityKind 区分两种映射能力。
type capabilityKind int

const (
	kindTyped capabilityKind = iota
	kindFlexible
)

func (k capabilityKind) String() string {
	if k == kindFlexible {
		return "flexible"
	}
	return "typed"
}

type registryKey struct {
	kind         capabilityKind
	notification reflect.Type
}

// registration 一条 (能力实例化, 实现类型) 登记。
// factory 每次调用返回全新实例——瞬态生命周期，不做实例共享。
type registration struct {
	kind           capabilityKind
	notification   reflect.Type
	implementation reflect.Type
	factory        func() any
	invokeTyped    func(ctx context.Context, notification any) ([]shared.IntegrationEvent, error)
	invokeFlexible func(ctx context.Context, notification any) ([]any, error)
}

// Registry 映射器注册表。
// 启动时一次性构建，之后只读；并发解析安全。
// 同一键重复注册时后写覆盖先写（last-write-wins）。
type Registry struct {
	mu      sync.RWMutex
	entries map[registryKey]registration
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[registryKey]registration),
	}
}

func (r *Registry) put(reg registration) {
	key := registryKey{kind: reg.kind, notification: reg.notification}

	r.mu.Lock()
	previous, replaced := r.entries[key]
	r.entries[key] = reg
	r.mu.Unlock()

	if replaced {
		logger.Debug("Mapper registration replaced",
			zap.String("kind", reg.kind.String()),
			zap.String("notification", reg.notification.String()),
			zap.String("previous", previous.implementation.String()),
			zap.String("implementation", reg.implementation.String()),
		)
		return
	}
	logger.Debug("Mapper registered",
		zap.String("kind", reg.kind.String()),
		zap.String("notification", reg.notification.String()),
		zap.String("implementation", reg.implementation.String()),
	)
}

func (r *Registry) lookup(kind capabilityKind, notification reflect.Type) (registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[registryKey{kind: kind, notification: notification}]
	return reg, ok
}

// Len 返回登记条数。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entry 注册表条目的只读描述，用于启动日志和诊断。
type Entry struct {
	Kind           string
	Notification   string
	Implementation string
}

// Entries 返回全部登记条目的描述。
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for _, reg := range r.entries {
		entries = append(entries, Entry{
			Kind:           reg.kind.String(),
			Notification:   reg.notification.String(),
			Implementation: reg.implementation.String(),
		})
	}
	return entries
}

// RegisterTyped 以编译期类型安全的方式登记强类型映射器。
// factory 每次解析都会被重新调用。
func RegisterTyped[N shared.DomainEventNotification](r *Registry, factory func() EventMapper[N]) {
	if factory == nil {
		panic("mapper: RegisterTyped called with nil factory")
	}
	r.put(registration{
		kind:           kindTyped,
		notification:   typeFor[N](),
		implementation: reflect.TypeOf(factory()),
		factory:        func() any { return factory() },
		invokeTyped: func(ctx context.Context, notification any) ([]shared.IntegrationEvent, error) {
			return factory().Map(ctx, notification.(N))
		},
	})
}

// RegisterFlexible 以编译期类型安全的方式登记弱类型映射器。
func RegisterFlexible[N shared.DomainEventNotification](r *Registry, factory func() FlexibleEventMapper[N]) {
	if factory == nil {
		panic("mapper: RegisterFlexible called with nil factory")
	}
	r.put(registration{
		kind:           kindFlexible,
		notification:   typeFor[N](),
		implementation: reflect.TypeOf(factory()),
		factory:        func() any { return factory() },
		invokeFlexible: func(ctx context.Context, notification any) ([]any, error) {
			return factory().MapAny(ctx, notification.(N))
		},
	})
}

// ResolveTyped 解析通知类型 N 的强类型映射器。
// 每次调用返回一个全新实例；未注册时第二个返回值为 false。
func ResolveTyped[N shared.DomainEventNotification](r *Registry) (EventMapper[N], bool) {
	reg, ok := r.lookup(kindTyped, typeFor[N]())
	if !ok {
		return nil, false
	}
	m, ok := reg.factory().(EventMapper[N])
	return m, ok
}

// ResolveFlexible 解析通知类型 N 的弱类型映射器。
func ResolveFlexible[N shared.DomainEventNotification](r *Registry) (FlexibleEventMapper[N], bool) {
	reg, ok := r.lookup(kindFlexible, typeFor[N]())
	if !ok {
		return nil, false
	}
	m, ok := reg.factory().(FlexibleEventMapper[N])
	return m, ok
}

// Dispatch 按通知的运行时类型找到强类型映射器并执行。
// 未注册映射器时返回 (nil, nil)：没有对外事件不算错误。
// 映射器返回的错误原样向上传递，本层不重试、不吞错。
func (r *Registry) Dispatch(ctx context.Context, notification shared.DomainEventNotification) ([]shared.IntegrationEvent, error) {
	if notification == nil {
		return nil, shared.NewValidationError("mapper", "notification", "notification cannot be nil")
	}
	reg, ok := r.lookup(kindTyped, reflect.TypeOf(notification))
	if !ok {
		return nil, nil
	}
	return reg.invokeTyped(ctx, notification)
}

// DispatchFlexible 按通知的运行时类型找到弱类型映射器并执行。
func (r *Registry) DispatchFlexible(ctx context.Context, notification shared.DomainEventNotification) ([]any, error) {
	if notification == nil {
		return nil, shared.NewValidationError("mapper", "notification", "notification cannot be nil")
	}
	reg, ok := r.lookup(kindFlexible, reflect.TypeOf(notification))
	if !ok {
		return nil, nil
	}
	return reg.invokeFlexible(ctx, notification)
}

func typeFor[N any]() reflect.Type {
	return reflect.TypeOf((*N)(nil)).Elem()
}
