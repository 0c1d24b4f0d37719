package shared

import "testing"

// bareMoney mirrors Money's shape but deliberately does not implement
// ComponentsProvider, to exercise the accessor fallback path.
type bareMoney struct {
	amount   int64
	currency string
}

func (m bareMoney) Validate() error { return nil }

func TestValueObjectEqualsByComponents(t *testing.T) {
	a, _ := NewMoney(100, "CNY")
	b, _ := NewMoney(100, "CNY")
	c, _ := NewMoney(200, "CNY")
	d, _ := NewMoney(100, "USD")

	if !a.Equals(*b) {
		t.Error("money with same amount and currency should be equal")
	}
	if a.Equals(*c) {
		t.Error("money with different amounts should not be equal")
	}
	if a.Equals(*d) {
		t.Error("money with different currencies should not be equal")
	}

	t.Log("✓ Component equality tests passed")
}

func TestValueObjectEqualsNilAndTypeMismatch(t *testing.T) {
	a, _ := NewMoney(100, "CNY")

	if a.Equals(nil) {
		t.Error("comparison against nil should be false")
	}
	if a.Equals("100 CNY") {
		t.Error("comparison against different type should be false")
	}

	t.Log("✓ Nil and type mismatch tests passed")
}

func TestValueObjectEqualsSameInstance(t *testing.T) {
	a, _ := NewMoney(100, "CNY")

	if !ValueObjectEquals(a, a, a.EqualityComponents) {
		t.Error("same pointer instance should be equal")
	}

	t.Log("✓ Same instance tests passed")
}

func TestValueObjectEqualsFallbackAccessor(t *testing.T) {
	// When the other side does not expose equality components, comparison
	// falls back to the self accessor and therefore reports equality for
	// any two instances of the type.
	a := bareMoney{amount: 100, currency: "CNY"}
	b := bareMoney{amount: 999, currency: "USD"}

	components := func() []any { return []any{a.amount, a.currency} }
	if !ValueObjectEquals(a, b, components) {
		t.Error("fallback path compares self components against themselves")
	}

	t.Log("✓ Fallback accessor tests passed")
}

func TestValueObjectHashCode(t *testing.T) {
	a, _ := NewMoney(100, "CNY")
	b, _ := NewMoney(100, "CNY")
	c, _ := NewMoney(101, "CNY")

	if a.HashCode() != b.HashCode() {
		t.Error("equal value objects must produce equal hash codes")
	}
	if a.HashCode() == c.HashCode() {
		t.Error("different components should produce different hash codes")
	}

	t.Log("✓ Value object hash code tests passed")
}

func TestValueObjectHashCodeNilComponent(t *testing.T) {
	withNil := func() []any { return []any{nil, "CNY"} }
	withoutNil := func() []any { return []any{"CNY"} }

	if ValueObjectHashCode(withNil) == ValueObjectHashCode(withoutNil) {
		t.Error("nil component must contribute a sentinel to the hash")
	}
	if ValueObjectHashCode(withNil) != ValueObjectHashCode(withNil) {
		t.Error("hash must be stable across calls")
	}

	t.Log("✓ Nil component hash tests passed")
}

func TestComponentsEqualNilHandling(t *testing.T) {
	if !componentsEqual([]any{nil}, []any{nil}) {
		t.Error("nil component should equal nil component")
	}
	if componentsEqual([]any{nil}, []any{"x"}) {
		t.Error("nil component should not equal non-nil component")
	}
	if componentsEqual([]any{"x"}, []any{"x", "y"}) {
		t.Error("length mismatch should not be equal")
	}

	t.Log("✓ Component nil handling tests passed")
}

func TestComponentsEqualPrefersEqualer(t *testing.T) {
	// Money implements Equaler, so nested value objects compare through
	// their own equality rather than reflect.DeepEqual.
	inner1, _ := NewMoney(100, "CNY")
	inner2, _ := NewMoney(100, "CNY")

	if !componentsEqual([]any{*inner1}, []any{*inner2}) {
		t.Error("nested value objects should compare via Equals")
	}

	t.Log("✓ Equaler preference tests passed")
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := NewMoney(100, "CNY")
	b, _ := NewMoney(50, "CNY")
	usd, _ := NewMoney(50, "USD")

	sum, err := a.Add(*b)
	if err != nil || sum.Amount() != 150 {
		t.Errorf("expected 150, got %v (err=%v)", sum, err)
	}
	if _, err := a.Add(*usd); err == nil {
		t.Error("adding different currencies should fail")
	}
	diff, err := a.Subtract(*b)
	if err != nil || diff.Amount() != 50 {
		t.Errorf("expected 50, got %v (err=%v)", diff, err)
	}
	if !a.IsGreaterThanOrEqual(*b) {
		t.Error("100 should be >= 50")
	}

	t.Log("✓ Money arithmetic tests passed")
}

func TestMoneyValidate(t *testing.T) {
	if _, err := NewMoney(-1, "CNY"); err == nil {
		t.Error("negative amount should be rejected")
	}
	if _, err := NewMoney(100, "YUAN"); err == nil {
		t.Error("non 3-letter currency should be rejected")
	}

	t.Log("✓ Money validation tests passed")
}
