// Package money rounds and combines currency amounts with decimal arithmetic
// so reported totals do not carry float noise.
package money

import "github.com/shopspring/decimal"

const places = 2

// Round returns v rounded half away from zero to two decimals.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Sub returns a-b rounded to two decimals.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(places).Float64()
	return f
}

// Sum adds the values exactly and rounds the result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(places).Float64()
	return f
}

// Percentage returns part/whole*100 rounded to two decimals, or 0 when whole
// is zero.
func Percentage(part, whole float64) float64 {
	w := decimal.NewFromFloat(whole)
	if w.IsZero() {
		return 0
	}
	f, _ := decimal.NewFromFloat(part).Mul(decimal.NewFromInt(100)).Div(w).Round(places).Float64()
	return f
}
