package user

import (
	"time"

	"dddkit/domain/shared"

	"github.com/google/uuid"
)

// User 用户聚合根
// 聚合内只有 User 自身，没有子实体。
//
// 聚合根特征：
// 1. 所有字段私有，通过方法暴露行为
// 2. 包含版本号用于乐观锁
// 3. 包含事件列表用于记录领域事件
type User struct {
	id        string
	name      string
	email     Email
	isActive  bool
	version   int // 乐观锁版本号
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewUser 创建新用户聚合根
func NewUser(name string, email string) (*User, error) {
	if name == "" {
		return nil, NewInvalidNameError()
	}

	emailVO, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &User{
		id:        uuid.New().String(),
		name:      name,
		email:     *emailVO,
		isActive:  true,
		version:   0,
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
	}

	// 记录领域事件
	user.recordEvent(NewUserCreatedEvent(user.id, user.name, user.email.Value()))

	return user, nil
}

// Activate 激活用户
func (u *User) Activate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.updatedAt = time.Now()
	u.recordEvent(NewUserActivatedEvent(u.id))
}

// Deactivate 停用用户
func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.updatedAt = time.Now()
	u.recordEvent(NewUserDeactivatedEvent(u.id))
}

// UpdateName 更新用户名称
func (u *User) UpdateName(name string) error {
	if name == "" {
		return NewInvalidNameError()
	}
	u.name = name
	u.updatedAt = time.Now()
	return nil
}

// Equals 按标识判断与另一实体是否相等
func (u *User) Equals(other shared.Entity[string]) bool {
	return shared.EntityEquals[string](u, other)
}

// HashCode 返回只由 ID 决定的哈希
func (u *User) HashCode() uint64 {
	return shared.EntityHashCode[string](u)
}

// Getters - 只读访问器
func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) Version() int         { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// IsNew 版本为 0 且尚未持久化过
func (u *User) IsNew() bool { return u.version == 0 }

// IncrementVersionForSave 仓储在乐观锁更新成功后同步内存版本号。
// ⚠️ 仅限仓储实现调用。
func (u *User) IncrementVersionForSave() { u.version++ }

// RecordedEvents 只读访问已记录但尚未拉取的事件。
// 应用层在事务内用它构建通知，不会清空列表。
func (u *User) RecordedEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(u.events))
	copy(events, u.events)
	return events
}

// PullEvents 获取并清空聚合根的事件列表
func (u *User) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(u.events))
	copy(events, u.events)
	u.events = make([]shared.DomainEvent, 0)
	return events
}

func (u *User) recordEvent(event shared.DomainEvent) {
	u.events = append(u.events, event)
}

// ReconstructionDTO 用户重建数据传输对象
// ⚠️ 仅限仓储层使用，用于从数据库重建 User 聚合根。
type ReconstructionDTO struct {
	ID        string
	Name      string
	Email     string
	IsActive  bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO 从DTO重建User聚合根
// 重建不触发领域事件，也不做校验——数据库中的状态视为已校验。
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:        dto.ID,
		name:      dto.Name,
		email:     Email{value: dto.Email},
		isActive:  dto.IsActive,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
		events:    make([]shared.DomainEvent, 0),
	}
}

var _ shared.AggregateRoot = (*User)(nil)
