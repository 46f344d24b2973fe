package kernel

import (
	"github.com/shopspring/decimal"
)

// PriceTolerance is the largest difference between a client-declared amount and
// the server-derived one that is still accepted.
var PriceTolerance = decimal.New(1, -2)

// RoundMoney rounds half away from zero to two decimal places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// WithinTolerance reports whether declared is no further than PriceTolerance from
// expected. Client line totals and option modifiers are checked with it, so
// 24000.01 is accepted for 24000 while 24000.02 is not.
func WithinTolerance(declared, expected decimal.Decimal) bool {
	return declared.Sub(expected).Abs().LessThanOrEqual(PriceTolerance)
}

// PercentOf returns percent% of amount, rounded to money precision. Refund caps
// are computed with it.
//
// Example:
//
//	kernel.PercentOf(decimal.NewFromInt(10000), 5)        // 500
//	kernel.PercentOf(decimal.RequireFromString("99.99"), 5) // 5 (4.9995 rounded)
func PercentOf(amount decimal.Decimal, percent int) decimal.Decimal {
	return RoundMoney(amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)))
}
