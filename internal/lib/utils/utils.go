// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific layer:
// currency conversion between major and minor units, and ISO dates.
package utils

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ISODate is the layout of a calendar date, e.g. 2024-06-01.
const ISODate = "2006-01-02"

// ErrAmountOutOfRange is returned by ToCents when the cent value does not
// fit the 32-bit amount column.
var ErrAmountOutOfRange = errors.New("amount out of range")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt32)
	minCents = decimal.NewFromInt(math.MinInt32)
)

// ToCents converts a major-unit amount into minor units, rounding half away
// from zero to the nearest cent.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}

// FromCents converts minor units back into a major-unit amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCurrency renders cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := FromCents(cents).Truncate(0).String()
	fraction := FromCents(cents % 100).StringFixed(2)[1:]

	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}

	out := "$" + string(grouped) + fraction
	if negative {
		return "-" + out
	}
	return out
}

// ISODateOf returns the UTC calendar date of t.
func ISODateOf(t time.Time) string {
	return t.UTC().Format(ISODate)
}
