package user

import (
	"regexp"
	"strings"

	"dddkit/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email Value object - immutable, represents email address
// 相等性由分量序列决定：本地部分与域名部分，顺序固定。
type Email struct {
	value string
}

// NewEmail Create new Email value object
func NewEmail(email string) (*Email, error) {
	e := &Email{value: strings.TrimSpace(strings.ToLower(email))}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate 校验邮箱格式不变量
func (e Email) Validate() error {
	if !emailRegex.MatchString(e.value) {
		return NewInvalidEmailError(e.value)
	}
	return nil
}

// Value Get email value
func (e Email) Value() string {
	return e.value
}

// EqualityComponents 返回参与相等比较的分量
func (e Email) EqualityComponents() []any {
	local, domain, _ := strings.Cut(e.value, "@")
	return []any{local, domain}
}

// Equals Compare if two Email value objects are equal
func (e Email) Equals(other any) bool {
	return shared.ValueObjectEquals(e, other, e.EqualityComponents)
}

// HashCode 返回由分量决定的哈希
func (e Email) HashCode() uint64 {
	return shared.ValueObjectHashCode(e.EqualityComponents)
}

// String Implement Stringer interface
func (e Email) String() string {
	return e.value
}

var (
	_ shared.ValueObject        = Email{}
	_ shared.ComponentsProvider = Email{}
	_ shared.Equaler            = Email{}
)
