package shared

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// Entity 实体接口
// 实体与值对象的区别：
// 1. 实体有唯一标识（ID）
// 2. 实体的生命周期较长
// 3. 通过标识判断相等性（即使属性相同，ID不同就是不同的实体）
// 标识类型由调用方选择，约束为 comparable 以支持相等判断与哈希。
type Entity[ID comparable] interface {
	ID() ID
}

// AggregateRoot 聚合根接口
// 聚合根是DDD的核心概念，它是聚合的入口点，维护聚合的一致性边界
// 特性：
// 1. 有全局唯一标识
// 2. 维护聚合内部的不变量
// 3. 所有修改必须通过聚合根进行
// 4. 负责记录领域事件
type AggregateRoot interface {
	Entity[string]

	// Version 返回当前版本号，用于乐观锁并发控制
	Version() int

	// PullEvents 获取并清空聚合根记录的领域事件
	// 标准领域事件模式：聚合根记录事件，事务提交后再发布
	PullEvents() []DomainEvent
}

// EntityEquals 按标识判断两个实体是否相等。
// 规则：
//  1. other 为 nil 时不相等
//  2. 具体运行时类型不同的实体永不相等，即使 ID 相同
//  3. 其余情况仅比较 ID，不看任何属性字段
func EntityEquals[ID comparable](self, other Entity[ID]) bool {
	if self == nil {
		panic("shared: EntityEquals called with nil receiver")
	}
	if other == nil {
		return false
	}
	if rv := reflect.ValueOf(other); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return false
	}
	if reflect.TypeOf(self) != reflect.TypeOf(other) {
		return false
	}
	return self.ID() == other.ID()
}

// EntityHashCode 返回实体的哈希值，只取决于 ID。
// 约定：EntityEquals 判定相等的实体必然得到相同哈希。
func EntityHashCode[ID comparable](e Entity[ID]) uint64 {
	if e == nil {
		panic("shared: EntityHashCode called with nil receiver")
	}
	return hashOf(e.ID())
}

func hashOf(v any) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", v)
	return h.Sum64()
}
