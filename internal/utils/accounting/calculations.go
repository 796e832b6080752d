package accounting

import (
	"errors"

	"github.com/shopspring/decimal"
)

// BalancePrecision is the number of decimal places at which debit and credit totals are compared.
const BalancePrecision int32 = 4

// FxRatePrecision is the number of decimal places stored for exchange rates.
const FxRatePrecision int32 = 8

var (
	ErrNegativeAmount = errors.New("negative amounts are not allowed")
	ErrBothSides      = errors.New("a line cannot have both debit and credit")
	ErrNoAmount       = errors.New("a line must have debit or credit")
	ErrTooPrecise     = errors.New("amounts are limited to 4 decimal places")
)

// ValidateLineAmounts checks that exactly one of debit and credit is strictly positive
// and the other is zero. Both must fit in BalancePrecision decimal places, since lines are
// stored at that scale and rounding them would desync the header totals.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return ErrNegativeAmount
	}
	if debit.IsPositive() && credit.IsPositive() {
		return ErrBothSides
	}
	if debit.IsZero() && credit.IsZero() {
		return ErrNoAmount
	}
	if ExceedsPrecision(debit, BalancePrecision) || ExceedsPrecision(credit, BalancePrecision) {
		return ErrTooPrecise
	}
	return nil
}

// ExceedsPrecision reports whether d has non-zero digits beyond places decimal places.
// Trailing zeros do not count: 1.50000 fits in 4 places.
func ExceedsPrecision(d decimal.Decimal, places int32) bool {
	return !d.Equal(d.Truncate(places))
}

// Totals accumulates debit and credit sums across lines.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add accumulates one line's amounts.
func (t *Totals) Add(debit, credit decimal.Decimal) {
	t.Debit = t.Debit.Add(debit)
	t.Credit = t.Credit.Add(credit)
}

// IsBalanced reports whether the totals match at BalancePrecision.
func (t Totals) IsBalanced() bool {
	return t.Debit.Round(BalancePrecision).Equal(t.Credit.Round(BalancePrecision))
}

// FormatAmount renders d rounded to BalancePrecision without trailing zeros, e.g. 100, 12.5, 0.0001.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(BalancePrecision).String()
}
