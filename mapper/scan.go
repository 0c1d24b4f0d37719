package mapper

import (
	"context"
	"reflect"

	"dddkit/domain/shared"
)

var (
	contextType          = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType            = reflect.TypeOf((*error)(nil)).Elem()
	notificationType     = reflect.TypeOf((*shared.DomainEventNotification)(nil)).Elem()
	integrationSliceType = reflect.TypeOf([]shared.IntegrationEvent(nil))
	anySliceType         = reflect.TypeOf([]any(nil))
)

// addCandidate 检查单个候选工厂并登记它实现的映射能力。
// 候选必须是无参单返回值的工厂函数 func() T；T 是接口（无法实例化）
// 或不具备任何映射方法时整个候选被跳过。一个实现两种能力的类型
// 会产生两条相互独立的登记。返回完成的登记条数。
func (r *Registry) addCandidate(candidate any) int {
	if candidate == nil {
		return 0
	}

	factoryValue := reflect.ValueOf(candidate)
	factoryType := factoryValue.Type()
	if factoryType.Kind() != reflect.Func || factoryType.NumIn() != 0 || factoryType.NumOut() != 1 {
		return 0
	}

	product := factoryType.Out(0)
	if product.Kind() == reflect.Interface {
		return 0
	}

	factory := func() any {
		return factoryValue.Call(nil)[0].Interface()
	}

	registered := 0

	if method, ok := product.MethodByName("Map"); ok {
		if notification, ok := mapperSignature(method.Type, integrationSliceType); ok {
			r.put(registration{
				kind:           kindTyped,
				notification:   notification,
				implementation: product,
				factory:        factory,
				invokeTyped: func(ctx context.Context, n any) ([]shared.IntegrationEvent, error) {
					out := reflect.ValueOf(factory()).MethodByName("Map").
						Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(n)})
					return asIntegrationEvents(out[0]), asError(out[1])
				},
			})
			registered++
		}
	}

	if method, ok := product.MethodByName("MapAny"); ok {
		if notification, ok := mapperSignature(method.Type, anySliceType); ok {
			r.put(registration{
				kind:           kindFlexible,
				notification:   notification,
				implementation: product,
				factory:        factory,
				invokeFlexible: func(ctx context.Context, n any) ([]any, error) {
					out := reflect.ValueOf(factory()).MethodByName("MapAny").
						Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(n)})
					return asAnySlice(out[0]), asError(out[1])
				},
			})
			registered++
		}
	}

	return registered
}

// mapperSignature 判断方法类型是否符合映射能力形状：
// func (T) (context.Context, N) (out, error)，N 必须实现通知接口。
// 方法类型的首个入参是接收者本身。
func mapperSignature(method reflect.Type, out reflect.Type) (reflect.Type, bool) {
	if method.NumIn() != 3 || method.NumOut() != 2 {
		return nil, false
	}
	if method.In(1) != contextType {
		return nil, false
	}
	notification := method.In(2)
	if !notification.Implements(notificationType) {
		return nil, false
	}
	if method.Out(0) != out || method.Out(1) != errorType {
		return nil, false
	}
	return notification, true
}

func asIntegrationEvents(v reflect.Value) []shared.IntegrationEvent {
	if v.IsNil() {
		return nil
	}
	return v.Interface().([]shared.IntegrationEvent)
}

func asAnySlice(v reflect.Value) []any {
	if v.IsNil() {
		return nil
	}
	return v.Interface().([]any)
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
