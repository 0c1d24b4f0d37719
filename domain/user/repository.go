package user

import "context"

// Repository User repository interface
// DDD principles:
// 1. Repository only responsible for aggregate root persistence
// 2. Include context.Context to support timeout, cancellation and transaction
type Repository interface {
	// Save Save or update user aggregate root
	// user.IsNew() 为 true 时创建，否则按乐观锁版本更新
	Save(ctx context.Context, user *User) error

	// FindByID Find user aggregate root by ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail Find user by email (business uniqueness constraint)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Remove Remove user aggregate root
	Remove(ctx context.Context, id string) error
}
