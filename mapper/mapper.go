/*
Package mapper 提供"领域事件通知 → 集成事件"的映射约定。

一个通知（领域事件 + 附加上下文）经由映射器转换成零到多个对外发布
的集成事件。映射器按通知类型注册到 Registry，解析时每次都创建新实例
（瞬态生命周期），注册本身只在应用启动时一次性完成。
*/
package mapper

import (
	"context"

	"dddkit/domain/shared"
)

// EventMapper 强类型映射能力：把通知 N 映射为集成事件序列。
// 产出为空切片表示该通知没有对外事件，属正常情况。
type EventMapper[N shared.DomainEventNotification] interface {
	Map(ctx context.Context, notification N) ([]shared.IntegrationEvent, error)
}

// FlexibleEventMapper 弱类型映射能力：把通知 N 映射为任意出站负载。
// 方法名与 EventMapper 不同，因此同一个类型可以同时实现两种能力，
// 各自独立注册、独立解析。
type FlexibleEventMapper[N shared.DomainEventNotification] interface {
	MapAny(ctx context.Context, notification N) ([]any, error)
}
