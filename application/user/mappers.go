package user

import (
	"context"

	"dddkit/domain/shared"
	"dddkit/domain/user"
	"dddkit/mapper"

	"github.com/google/uuid"
)

// UserCreatedMapper 把用户创建通知映射为对外契约。
// 同时实现强类型与弱类型两种映射能力：前者产出集成事件进发件箱，
// 后者产出审计用的弱类型负载。两条能力各自独立注册。
type UserCreatedMapper struct{}

func NewUserCreatedMapper() *UserCreatedMapper {
	return &UserCreatedMapper{}
}

func (m *UserCreatedMapper) Map(ctx context.Context, n *user.UserCreatedNotification) ([]shared.IntegrationEvent, error) {
	event := n.Event()
	return []shared.IntegrationEvent{
		UserRegisteredIntegrationEvent{
			ID:                uuid.New().String(),
			UserID:            event.UserID(),
			Name:              event.Name(),
			Email:             event.Email(),
			ConfirmationToken: n.ConfirmationToken(),
			OccurredAt:        event.OccurredOn(),
		},
	}, nil
}

func (m *UserCreatedMapper) MapAny(ctx context.Context, n *user.UserCreatedNotification) ([]any, error) {
	event := n.Event()
	return []any{
		map[string]any{
			"action":      "user_registered",
			"user_id":     event.UserID(),
			"email":       event.Email(),
			"occurred_at": event.OccurredOn(),
		},
	}, nil
}

// UserDeactivatedMapper 把用户停用通知映射为对外契约。
type UserDeactivatedMapper struct{}

func NewUserDeactivatedMapper() *UserDeactivatedMapper {
	return &UserDeactivatedMapper{}
}

func (m *UserDeactivatedMapper) Map(ctx context.Context, n *user.UserDeactivatedNotification) ([]shared.IntegrationEvent, error) {
	event := n.Event()
	return []shared.IntegrationEvent{
		UserDeactivatedIntegrationEvent{
			ID:         uuid.New().String(),
			UserID:     event.UserID(),
			OccurredAt: event.OccurredOn(),
		},
	}, nil
}

// MapperModule 用户上下文的映射器清单，启动时交给注册表扫描。
func MapperModule() mapper.Module {
	return mapper.Module{
		Name: "user",
		Candidates: []any{
			func() *UserCreatedMapper { return NewUserCreatedMapper() },
			func() *UserDeactivatedMapper { return NewUserDeactivatedMapper() },
		},
	}
}

var (
	_ mapper.EventMapper[*user.UserCreatedNotification]         = (*UserCreatedMapper)(nil)
	_ mapper.FlexibleEventMapper[*user.UserCreatedNotification] = (*UserCreatedMapper)(nil)
	_ mapper.EventMapper[*user.UserDeactivatedNotification]     = (*UserDeactivatedMapper)(nil)
)
