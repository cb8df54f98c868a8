package partner

import (
	"gromart/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Balance is the signed running total of cash and credit a delivery partner
// holds against the platform. Unlike kernel.Money it is allowed to go
// negative: a negative balance means the partner owes the platform.
//
// The zero value is a valid zero balance.
type Balance struct {
	amount decimal.Decimal
}

// ZeroBalance returns a Balance of zero.
func ZeroBalance() Balance {
	return Balance{amount: decimal.Zero}
}

// NewBalance creates a Balance from a decimal amount. Any sign is permitted.
func NewBalance(amount decimal.Decimal) Balance {
	return Balance{amount: amount}
}

// BalanceFromString parses a Balance from its decimal string representation.
func BalanceFromString(s string) (Balance, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Balance{}, errs.NewValueIsInvalidErrorWithCause("balance", err)
	}
	return Balance{amount: d}, nil
}

// Amount returns the underlying decimal value.
func (b Balance) Amount() decimal.Decimal {
	return b.amount
}

// Add returns the balance shifted by the given signed delta.
func (b Balance) Add(delta decimal.Decimal) Balance {
	return Balance{amount: b.amount.Add(delta)}
}

// IsNegative reports whether the partner owes the platform.
func (b Balance) IsNegative() bool {
	return b.amount.IsNegative()
}

// IsEqual compares two balances for numeric equality.
func (b Balance) IsEqual(other Balance) bool {
	return b.amount.Equal(other.amount)
}

// String returns the decimal string representation of the balance.
func (b Balance) String() string {
	return b.amount.String()
}
