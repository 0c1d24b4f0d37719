package user

import (
	"dddkit/domain/shared"

	"github.com/google/uuid"
)

// UserCreatedNotification 用户创建通知
// 包裹 UserCreatedEvent，并携带只在对外映射时需要的附加上下文：
// 注册过程中生成的一次性确认令牌。令牌不属于事件本身，也不落入
// 聚合状态，构造后不可变。
type UserCreatedNotification struct {
	shared.Notification[*UserCreatedEvent]

	confirmationToken string
}

// NewUserCreatedNotification 创建通知并生成一次性确认令牌。
// 事件为 nil 时失败。
func NewUserCreatedNotification(event *UserCreatedEvent) (*UserCreatedNotification, error) {
	base, err := shared.NewNotification(event)
	if err != nil {
		return nil, err
	}
	return &UserCreatedNotification{
		Notification:      base,
		confirmationToken: uuid.New().String(),
	}, nil
}

// ConfirmationToken 一次性确认令牌
func (n *UserCreatedNotification) ConfirmationToken() string {
	return n.confirmationToken
}

// UserDeactivatedNotification 用户停用通知
// 停用没有额外上下文，通知只是事件的薄包装。
type UserDeactivatedNotification struct {
	shared.Notification[*UserDeactivatedEvent]
}

func NewUserDeactivatedNotification(event *UserDeactivatedEvent) (*UserDeactivatedNotification, error) {
	base, err := shared.NewNotification(event)
	if err != nil {
		return nil, err
	}
	return &UserDeactivatedNotification{Notification: base}, nil
}

var (
	_ shared.DomainEventNotification = (*UserCreatedNotification)(nil)
	_ shared.DomainEventNotification = (*UserDeactivatedNotification)(nil)
)
