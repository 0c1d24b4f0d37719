package mysql

import (
	"context"
	"errors"
	"strings"

	"dddkit/domain/shared"
	"dddkit/domain/user"
	"dddkit/infrastructure/persistence"
	"dddkit/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository GORM-backed user repository with strict optimistic locking.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, u)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, u)
	})
}

func (r *UserRepository) saveWithTx(tx *gorm.DB, u *user.User) error {
	userPO := po.FromUserDomain(u)

	if u.IsNew() {
		// Freshly created aggregates persist at version 1. Rebuilt
		// aggregates always carry version >= 1, which is what IsNew keys on.
		userPO.Version = u.Version() + 1
		if err := tx.Create(userPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return user.NewEmailAlreadyExistsError(userPO.Email)
			}
			return err
		}
		u.IncrementVersionForSave()
		return nil
	}

	expectedVersion := u.Version()

	// 严格乐观锁：必须使用聚合当前版本作为更新条件，避免静默覆盖并发写入。
	result := tx.Model(&po.UserPO{}).
		Where("id = ? AND version = ?", u.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":       userPO.Name,
			"email":      userPO.Email,
			"is_active":  userPO.IsActive,
			"version":    expectedVersion + 1,
			"updated_at": userPO.UpdatedAt,
		})

	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return user.NewEmailAlreadyExistsError(userPO.Email)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.UserPO{}).Where("id = ?", u.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.NewUserNotFoundError(u.ID())
		}
		return user.NewConcurrentModificationError(u.ID())
	}

	u.IncrementVersionForSave()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var userPO po.UserPO

	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user")
		}
		return nil, result.Error
	}

	return userPO.ToDomain(), nil
}

// FindByEmail returns nil without error when no user matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var userPO po.UserPO

	result := r.getDB(ctx).First(&userPO, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return userPO.ToDomain(), nil
}

// Remove performs a soft delete by deactivating the user.
func (r *UserRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).
		Model(&po.UserPO{}).
		Where("id = ?", id).
		Update("is_active", false)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.NewUserNotFoundError(id)
	}

	return nil
}

var _ user.Repository = (*UserRepository)(nil)
