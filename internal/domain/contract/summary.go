package contract

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TotalPaid sums the completed payments.
func TotalPaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Summarize derives the payment summary of a contract worth amount from
// its payment history.
func Summarize(amount decimal.Decimal, payments []Payment) Summary {
	paid := TotalPaid(payments)

	status := SettlementPaid
	switch {
	case paid.IsZero():
		status = SettlementNotPaid
	case paid.LessThan(amount):
		status = SettlementPartiallyPaid
	}

	percentage := decimal.Zero
	if !amount.IsZero() {
		// Round is half away from zero, which is half-up for non-negative values.
		percentage = paid.Mul(hundred).Div(amount).Round(1)
	}

	return Summary{
		TotalPaid:         paid,
		RemainingAmount:   amount.Sub(paid),
		PaymentStatus:     status,
		PaymentPercentage: percentage,
	}
}
