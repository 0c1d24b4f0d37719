package shared

import "reflect"

// DomainEventNotification 领域事件通知
// 把一个领域事件和只在对外映射时才需要的附加上下文（比如操作过程中
// 生成的一次性令牌）打包在一起。构造后不可变，被包裹的事件在通知的
// 生命周期内由通知独占，不允许共享修改。
type DomainEventNotification interface {
	// WrappedEvent 返回被包裹的领域事件，永不为 nil
	WrappedEvent() DomainEvent
}

// Notification 通知基础结构，供具体通知内嵌使用。
// 附加上下文字段由具体通知自行定义。
type Notification[E DomainEvent] struct {
	event E
}

// NewNotification 创建通知。事件为 nil 时立即失败（参数错误）。
func NewNotification[E DomainEvent](event E) (Notification[E], error) {
	if isNilEvent(event) {
		return Notification[E]{}, NewValidationError("notification", "event", "wrapped event cannot be nil")
	}
	return Notification[E]{event: event}, nil
}

// Event 返回强类型的被包裹事件。
func (n Notification[E]) Event() E {
	return n.event
}

// WrappedEvent 实现 DomainEventNotification。
func (n Notification[E]) WrappedEvent() DomainEvent {
	return n.event
}

func isNilEvent(event any) bool {
	if event == nil {
		return true
	}
	rv := reflect.ValueOf(event)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
