package kernel

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits a Money amount may carry.
const MoneyScale = 2

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// Money is a non-negative monetary amount with cent precision, used for the
// extra cost a vendor attaches to an accepted amendment.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount: it must be >= 0 and have at most MoneyScale
// fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"extraCost", fmt.Errorf("%s is negative", amount.String()))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"extraCost", fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyScale))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal string such as "500" or "125.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("extraCost", err)
	}
	return NewMoney(d)
}

// ZeroMoney is a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
