package errors

import (
	"errors"

	"dddkit/domain/shared"
	"dddkit/domain/user"
	"dddkit/mapper"
)

// FromDomainError 把领域错误翻译成带错误码的 AppError。
// 已经是 AppError 的原样返回；识别不了的一律归为内部错误，
// 真实错误保留在 Err 字段供日志使用。
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, "resource was modified by another request")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return Wrap(err, CodeEmailAlreadyExist, "email already registered")
	case errors.Is(err, user.ErrUserNotActive):
		return Wrap(err, CodeUserNotActive, "user is not active")
	case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrInvalidName):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, mapper.ErrNoModules):
		return Wrap(err, CodeConfiguration, "event mapping is not configured")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, "resource not found")
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, "resource conflict")
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, "operation not allowed")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
