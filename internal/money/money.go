// Package money holds the arithmetic for BHD-style amounts, which carry
// three fractional digits.
package money

import "github.com/shopspring/decimal"

// Places is the number of fractional digits kept for every amount.
const Places = 3

// Round rounds d half away from zero to Places digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// LineTotal returns price × quantity, rounded.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return Round(price.Mul(decimal.NewFromInt(int64(quantity))))
}

// Format renders d with exactly Places digits, e.g. "3.750".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
