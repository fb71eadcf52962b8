// Package money parses and formats monetary amounts.
//
// Invariants:
//   - Amounts are decimal.Decimal, never binary floats.
//   - Stored values fit numeric(15,2): at most 13 integer digits and 2 fractional digits.
//   - Rendered values always carry exactly two decimals ("900000.00").
package money

import (
	"fmt"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	// Scale is the number of fractional digits kept for every amount.
	Scale = 2
	// Precision is the total number of digits a stored amount may have.
	Precision = 15
)

var maxAbs = decimal.New(1, Precision-Scale)

// ParseAmount parses a transaction amount. It must be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", domain.ErrInvalidAmount)
	}
	return d, nil
}

// ParseBalance parses a wallet balance. Zero and negative values are allowed.
// An empty string is treated as zero.
func ParseBalance(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return parse(s)
}

// Format renders d with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

func parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", domain.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal number", domain.ErrInvalidAmount, s)
	}
	if d.Exponent() < -Scale && !d.Equal(d.Round(Scale)) {
		return decimal.Zero, fmt.Errorf("%w: at most %d decimal places", domain.ErrInvalidAmount, Scale)
	}
	if d.Abs().GreaterThanOrEqual(maxAbs) {
		return decimal.Zero, fmt.Errorf("%w: exceeds %d integer digits", domain.ErrInvalidAmount, Precision-Scale)
	}
	return d.Round(Scale), nil
}
