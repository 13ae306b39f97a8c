package kernel

import (
	"fmt"

	"morna/internal/pkg/errs"
	"morna/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when Money was not built by NewMoney or ParseMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ParseMoney")

// MoneyScale is the number of decimal places Money keeps. MaxMoney is the
// first amount that no longer fits the store's numeric(14,2) column.
const MoneyScale = 2

var MaxMoney = decimal.New(1, 12)

// Money is a non-negative amount in cents. Finer fractions are rounded half
// away from zero when the value is built, so what is stored is what was
// computed.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	rounded := amount.Round(MoneyScale)
	if rounded.GreaterThanOrEqual(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "999999999999.99")
	}

	return Money{amount: rounded, guard: guard.NewConstructorGuard()}, nil
}

func ParseMoney(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustParseMoney is ParseMoney for literals known to be valid.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Multiply returns the amount for quantity units. A total past MaxMoney is
// out of range.
func (m Money) Multiply(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity <= 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
