// Package money provides a small currency value type used by all pricing
// code. Amounts are backed by arbitrary-precision decimals so repeated
// percentage and rounding operations never accumulate floating point drift.
// The storefront deals in a single currency with two-decimal rounding.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable currency amount.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// FromDecimal wraps a decimal value as Money.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// FromString parses a decimal string ("149.00") into Money.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// MustFromString parses a decimal string and panics on failure.
// Intended for package-level constants.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromFloat converts a float64 into Money. Only for boundary code that
// receives floats from JSON; internal arithmetic stays decimal.
func FromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{amount: m.amount.Add(o.amount)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{amount: m.amount.Sub(o.amount)}
}

// MulInt returns m multiplied by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Mul returns m multiplied by an arbitrary decimal rate.
func (m Money) Mul(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Round2 rounds to two decimal places (half away from zero).
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.amount.Equal(o.amount)
}

// GreaterThanOrEqual reports whether m >= o.
func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.amount.GreaterThanOrEqual(o.amount)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders the amount as a plain JSON number with two decimals,
// matching the order schema's numeric price fields.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("unmarshal money: %w", err)
	}
	m.amount = d
	return nil
}
