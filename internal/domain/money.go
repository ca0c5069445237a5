package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NegativeAmountError reports an attempt to construct an Amount from a
// negative value. The attempted value is kept so callers can log it.
type NegativeAmountError struct {
	Attempted decimal.Decimal
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("monetary amount cannot be negative: %s", e.Attempted)
}

// Amount is a validated non-negative monetary value. The zero value is a
// valid amount of zero. Amounts are immutable; operations return new values.
type Amount struct {
	value decimal.Decimal
}

// NewAmount validates value and wraps it as an Amount.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.IsNegative() {
		return Amount{}, &NegativeAmountError{Attempted: value}
	}
	return Amount{value: value}, nil
}

// AmountFromInt builds an Amount from whole currency units. It panics on
// negative input and exists for fixed domain constants and tests.
func AmountFromInt(value int64) Amount {
	amount, err := NewAmount(decimal.NewFromInt(value))
	if err != nil {
		panic(err)
	}
	return amount
}

// Add returns the sum of the two amounts. The sum of non-negative values is
// non-negative, so Add never fails.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// GreaterThan reports whether a exceeds other.
func (a Amount) GreaterThan(other Amount) bool {
	return a.value.GreaterThan(other.value)
}

// Equal reports value equality, ignoring decimal exponent representation.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

func (a Amount) String() string {
	return a.value.String()
}
