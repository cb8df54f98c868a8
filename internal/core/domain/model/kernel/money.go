package kernel

import (
	"fmt"

	"gromart/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount.
// It wraps a decimal value to avoid floating-point rounding in price and
// fee arithmetic. The signed running balance of a delivery partner is the
// one monetary quantity that is allowed to go negative, and it is therefore
// kept as a raw decimal on the partner aggregate rather than as Money.
//
// The zero value of Money is a valid zero amount.
//
// Example usage:
//
//	subtotal, err := kernel.NewMoneyFromString("500")
//	if err != nil {
//	    // handle error
//	}
//	total := subtotal.Add(kernel.MustNewMoney(decimal.NewFromInt(5)))
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of amount zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// MustNewMoney creates a Money from a decimal amount and panics if the
// amount is negative. Intended for constants and tests.
func MustNewMoney(amount decimal.Decimal) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromString parses a Money from its decimal string representation.
// Returns an error if the string is not a valid decimal or is negative.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul returns the Money multiplied by an integer factor.
func (m Money) Mul(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares two Money values for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
