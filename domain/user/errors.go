/*
Package user 定义用户限界上下文：聚合根、值对象、领域事件、
通知以及领域错误。
*/
package user

import (
	"errors"

	"dddkit/domain/shared"
)

var (
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrInvalidName            = errors.New("name cannot be empty")
	ErrUserNotActive          = errors.New("user is not active")
	ErrConcurrentModification = errors.New("user was modified by another transaction, please retry")
	ErrEmailAlreadyExists     = errors.New("email already exists")
)

func NewUserNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "user",
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(userID string) error {
	return &userDomainError{
		sentinel: ErrConcurrentModification,
		entity:   "user",
		message:  "user " + userID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidEmailError(email string) error {
	return &userDomainError{
		sentinel: ErrInvalidEmail,
		entity:   "user",
		field:    "email",
		message:  "invalid email format: " + email,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidNameError() error {
	return &userDomainError{
		sentinel: ErrInvalidName,
		entity:   "user",
		field:    "name",
		message:  "name cannot be empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewUserNotActiveError(userID string) error {
	return &userDomainError{
		sentinel: ErrUserNotActive,
		entity:   "user",
		message:  "user " + userID + " is not active",
		stack:    shared.CaptureStack(3),
	}
}

func NewEmailAlreadyExistsError(email string) error {
	return &userDomainError{
		sentinel: ErrEmailAlreadyExists,
		entity:   "user",
		field:    "email",
		message:  "email already exists: " + email,
		stack:    shared.CaptureStack(3),
	}
}

type userDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string   { return e.message }
func (e *userDomainError) Unwrap() error   { return e.sentinel }
func (e *userDomainError) Stack() []string { return shared.FormatStack(e.stack) }
