// Package core holds the domain model: monetary values, transactions,
// investments, report aggregation and investment simulations.
//
// Everything in this package is pure and side-effect free; persistence and
// transport live in their own packages and depend on core, never the other
// way around.
package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable monetary value quantized to exactly 2 fractional
// digits. Quantization uses round-half-up (ties away from zero) and is applied
// at construction and after every arithmetic operation, so a Money is always
// in canonical form. Arithmetic only combines Money with Money; scaling by a
// plain number goes through MulScalar/DivScalar.
type Money struct {
	amount decimal.Decimal
}

const moneyPlaces = 2

// NewMoney parses a decimal string ("1234.567", "-10", "0.01") into a
// canonical Money. Returns ErrInvalidAmount when the input is not a decimal
// number.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewMoneyFromDecimal(d), nil
}

// NewMoneyFromDecimal quantizes an arbitrary-precision decimal to canonical
// Money form.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(moneyPlaces)}
}

// NewMoneyFromInt builds a Money from a whole unit count (e.g. 10 -> "10.00").
func NewMoneyFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units).Round(moneyPlaces)}
}

// MustMoney is NewMoney that panics on invalid input. Reserved for literals.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns the canonical zero value ("0.00").
func ZeroMoney() Money {
	return Money{amount: decimal.Zero.Round(moneyPlaces)}
}

func (m Money) Add(o Money) Money { return NewMoneyFromDecimal(m.amount.Add(o.amount)) }
func (m Money) Sub(o Money) Money { return NewMoneyFromDecimal(m.amount.Sub(o.amount)) }
func (m Money) Neg() Money        { return NewMoneyFromDecimal(m.amount.Neg()) }

// MulScalar scales by a plain decimal factor and re-quantizes.
func (m Money) MulScalar(factor decimal.Decimal) Money {
	return NewMoneyFromDecimal(m.amount.Mul(factor))
}

// DivScalar divides by a plain decimal divisor and re-quantizes.
func (m Money) DivScalar(divisor decimal.Decimal) Money {
	return NewMoneyFromDecimal(m.amount.Div(divisor))
}

// Cmp returns -1, 0 or +1 comparing canonical values.
func (m Money) Cmp(o Money) int      { return m.amount.Cmp(o.amount) }
func (m Money) Equal(o Money) bool   { return m.amount.Equal(o.amount) }
func (m Money) IsZero() bool         { return m.amount.IsZero() }
func (m Money) IsPositive() bool     { return m.amount.IsPositive() }
func (m Money) IsNegative() bool     { return m.amount.IsNegative() }
func (m Money) LessThan(o Money) bool { return m.amount.LessThan(o.amount) }

// Decimal exposes the canonical value for full-precision intermediate math
// (e.g. interest = balance * rate before re-quantization).
func (m Money) Decimal() decimal.Decimal { return m.amount }

// String renders the canonical form with exactly 2 fractional digits, the
// only representation that crosses process boundaries.
func (m Money) String() string { return m.amount.StringFixed(moneyPlaces) }

// MarshalJSON encodes the value as a string to avoid float round-trips.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a string-encoded decimal and re-quantizes it.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
