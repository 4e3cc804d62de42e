package orderbookv1

import "github.com/shopspring/decimal"

// FormatPrice renders p with at most two decimals, without trailing zeros, and "0" for zero.
func FormatPrice(p decimal.Decimal) string {
	rounded := p.Round(2)
	if rounded.IsZero() {
		return "0"
	}
	return rounded.String()
}
