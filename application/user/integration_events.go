package user

import (
	"time"

	"dddkit/domain/shared"
)

// UserRegisteredIntegrationEvent 对外发布的用户注册契约事件。
// 字段导出并带 json 标签：发件箱直接序列化整个事件作为载荷。
type UserRegisteredIntegrationEvent struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	ConfirmationToken string    `json:"confirmation_token"`
	OccurredAt        time.Time `json:"occurred_at"`
}

func (e UserRegisteredIntegrationEvent) EventName() string     { return "user.registered" }
func (e UserRegisteredIntegrationEvent) OccurredOn() time.Time { return e.OccurredAt }

// UserDeactivatedIntegrationEvent 对外发布的用户停用契约事件。
type UserDeactivatedIntegrationEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e UserDeactivatedIntegrationEvent) EventName() string     { return "user.deactivated" }
func (e UserDeactivatedIntegrationEvent) OccurredOn() time.Time { return e.OccurredAt }

var (
	_ shared.IntegrationEvent = UserRegisteredIntegrationEvent{}
	_ shared.IntegrationEvent = UserDeactivatedIntegrationEvent{}
)
