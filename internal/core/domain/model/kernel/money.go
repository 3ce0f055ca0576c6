package kernel

import (
	"fmt"

	"cafe/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for prices.
const moneyScale = 2

// Money is a non-negative decimal amount rounded to two fractional digits.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the additive identity used to start totals.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates that amount is not negative and rounds it half away from zero.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "3.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money is invalid", err)
	}
	return NewMoney(amount)
}

// Decimal exposes the amount for persistence mappers.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Multiply returns m × quantity.
func (m Money) Multiply(quantity Quantity) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity.Int())))}
}

// IsEqual compares amounts numerically, so "3.5" equals "3.50".
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
