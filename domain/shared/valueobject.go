package shared

import (
	"reflect"
)

// ValueObject 值对象接口
// 值对象的特征：
// 1. 没有唯一标识
// 2. 不可变（immutable）
// 3. 通过属性值判断相等性
// 注意：Go语言中没有强制不可变性的手段，需要通过约定和编码规范保证。
// Validate 校验内部不变量，具体谓词和错误信息由各值对象自行定义，
// 通常在工厂函数里调用，本层不会自动触发。
type ValueObject interface {
	Validate() error
}

// ComponentsProvider 相等性分量访问器
// 值对象可选实现：返回参与相等比较的字段序列。
// 顺序必须稳定——同一实例每次调用都要返回相同顺序的相同分量。
type ComponentsProvider interface {
	EqualityComponents() []any
}

// Equaler 自定义相等比较能力
// 分量元素实现此接口时，逐对比较会优先走它而不是结构比较。
type Equaler interface {
	Equals(other any) bool
}

// ValueObjectEquals 按分量序列判断两个值对象是否相等。
// 规则：
//  1. other 为 nil 时不相等；同一实例直接相等
//  2. 具体运行时类型不同永不相等
//  3. other 实现 ComponentsProvider 时用它自己的分量参与比较，
//     支持同一逻辑值类型的两种具体实现互相比较
//  4. 否则回退到再次调用 self 的分量访问器，即拿 self 的分量和
//     自身比较。沿用既有约定，不在此收窄
func ValueObjectEquals(self ValueObject, other any, components func() []any) bool {
	if self == nil {
		panic("shared: ValueObjectEquals called with nil receiver")
	}
	if components == nil {
		panic("shared: ValueObjectEquals called with nil components accessor")
	}
	if other == nil {
		return false
	}

	sv, ov := reflect.ValueOf(self), reflect.ValueOf(other)
	if sv.Kind() == reflect.Ptr && ov.Kind() == reflect.Ptr && sv.Pointer() == ov.Pointer() {
		return true
	}
	if reflect.TypeOf(self) != reflect.TypeOf(other) {
		return false
	}

	selfComponents := components()
	var otherComponents []any
	if provider, ok := other.(ComponentsProvider); ok {
		otherComponents = provider.EqualityComponents()
	} else {
		otherComponents = components()
	}

	return componentsEqual(selfComponents, otherComponents)
}

// componentSentinel 参与哈希折叠时代表 nil 分量的固定值。
const componentSentinel uint64 = 0x9e3779b97f4a7c15

// ValueObjectHashCode 对分量序列做异或折叠得到哈希。
// 约定：ValueObjectEquals 判定相等的值对象必然得到相同哈希。
func ValueObjectHashCode(components func() []any) uint64 {
	if components == nil {
		panic("shared: ValueObjectHashCode called with nil components accessor")
	}

	var acc uint64
	for _, c := range components() {
		if isNilValue(c) {
			acc ^= componentSentinel
			continue
		}
		acc ^= hashOf(c)
	}
	return acc
}

// componentsEqual 逐对比较两个分量序列。
// 长度不同即不相等；nil 只与 nil 相等；元素实现 Equaler 时走自定义
// 比较，否则按结构深度相等比较。
func componentsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]

		xNil, yNil := isNilValue(x), isNilValue(y)
		if xNil || yNil {
			if xNil != yNil {
				return false
			}
			continue
		}

		if eq, ok := x.(Equaler); ok {
			if !eq.Equals(y) {
				return false
			}
			continue
		}

		if !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
