package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits money amounts may carry.
const MoneyPlaces = 2

// ValidAmount reports whether d is a positive money amount with at most
// MoneyPlaces fractional digits.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyPlaces))
}
