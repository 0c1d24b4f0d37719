package errors

import (
	"errors"
	"fmt"
	"testing"

	"dddkit/domain/shared"
	"dddkit/domain/user"
	"dddkit/mapper"
)

func TestFromDomainErrorNil(t *testing.T) {
	if got := FromDomainError(nil); got != nil {
		t.Errorf("nil error should map to nil, got %v", got)
	}

	t.Log("✓ Nil mapping tests passed")
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	original := New(CodeBadRequest, "bad input")

	got := FromDomainError(original)
	if got != original {
		t.Error("existing AppError should be returned unchanged")
	}

	wrapped := fmt.Errorf("handler: %w", original)
	got = FromDomainError(wrapped)
	if got == nil || got.Code != CodeBadRequest {
		t.Errorf("wrapped AppError should be unwrapped, got %v", got)
	}

	t.Log("✓ AppError pass-through tests passed")
}

func TestFromDomainErrorSentinelMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"concurrent modification", user.NewConcurrentModificationError("user-1"), CodeConcurrentModify},
		{"email exists", user.NewEmailAlreadyExistsError("a@b.com"), CodeEmailAlreadyExist},
		{"user not active", user.NewUserNotActiveError("user-1"), CodeUserNotActive},
		{"invalid email", user.NewInvalidEmailError("bad"), CodeValidation},
		{"no mapper modules", fmt.Errorf("startup: %w", mapper.ErrNoModules), CodeConfiguration},
		{"not found", shared.NewNotFoundError("user"), CodeNotFound},
		{"conflict", shared.NewConflictError("user", "version conflict"), CodeConflict},
		{"invalid input", shared.NewValidationError("user", "name", "name required"), CodeValidation},
	}

	for _, tc := range cases {
		got := FromDomainError(tc.err)
		if got == nil {
			t.Errorf("%s: expected AppError, got nil", tc.name)
			continue
		}
		if got.Code != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.code, got.Code)
		}
		if !errors.Is(got, tc.err) {
			t.Errorf("%s: original error should stay in the chain", tc.name)
		}
	}

	t.Log("✓ Sentinel mapping tests passed")
}

func TestFromDomainErrorUnknownBecomesInternal(t *testing.T) {
	got := FromDomainError(errors.New("driver exploded"))
	if got.Code != CodeInternal {
		t.Errorf("expected CodeInternal, got %s", got.Code)
	}
	if got.Message != "internal server error" {
		t.Errorf("internal details must not leak into the message, got %q", got.Message)
	}

	t.Log("✓ Unknown error mapping tests passed")
}
