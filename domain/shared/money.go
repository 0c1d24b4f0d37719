package shared

import "errors"

// Money 值对象 - 表示金额
// 以最小货币单位存储（如分），货币代码使用 ISO 4217 三字母格式。
type Money struct {
	amount   int64
	currency string
}

// NewMoney 创建新的Money值对象
func NewMoney(amount int64, currency string) (*Money, error) {
	m := &Money{amount: amount, currency: currency}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate 校验内部不变量
func (m Money) Validate() error {
	if len(m.currency) != 3 {
		return NewValidationError("money", "currency", "currency must be a 3-letter ISO code")
	}
	if m.amount < 0 {
		return NewValidationError("money", "amount", "amount cannot be negative")
	}
	return nil
}

// Amount 获取金额数量
func (m Money) Amount() int64 {
	return m.amount
}

// Currency 获取货币类型
func (m Money) Currency() string {
	return m.currency
}

// EqualityComponents 返回参与相等比较的分量，顺序固定。
func (m Money) EqualityComponents() []any {
	return []any{m.amount, m.currency}
}

// Equals 比较两个Money值对象是否相等
func (m Money) Equals(other any) bool {
	return ValueObjectEquals(m, other, m.EqualityComponents)
}

// HashCode 返回由分量决定的哈希
func (m Money) HashCode() uint64 {
	return ValueObjectHashCode(m.EqualityComponents)
}

// Add 金额相加，返回新的Money值对象
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}
	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract 金额相减，返回新的Money值对象
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}
	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// IsGreaterThanOrEqual 比较金额是否大于或等于另一个金额
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

var (
	_ ValueObject        = Money{}
	_ ComponentsProvider = Money{}
	_ Equaler            = Money{}
)
