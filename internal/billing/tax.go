// Package billing holds the tax arithmetic, history periods and spreadsheet
// export shared by the bill endpoints.
package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DefaultGSTPercentage applies when a bill request carries no rate.
var DefaultGSTPercentage = decimal.NewFromInt(18)

// Totals is the tax breakdown of a bill.
type Totals struct {
	TotalWithoutTax decimal.Decimal
	GSTPercentage   decimal.Decimal
	Tax             decimal.Decimal
	TotalAmount     decimal.Decimal
}

// Compute applies gstPercentage to subtotal.
// TotalAmount = subtotal + subtotal*pct/100, rounded to cents.
func Compute(subtotal, gstPercentage decimal.Decimal) Totals {
	tax := subtotal.Mul(gstPercentage).Div(hundred)
	return Totals{
		TotalWithoutTax: subtotal,
		GSTPercentage:   gstPercentage,
		Tax:             tax,
		TotalAmount:     subtotal.Add(tax).Round(2),
	}
}

// LineTotal returns price × quantity.
func LineTotal(price decimal.Decimal, quantity int32) decimal.Decimal {
	return price.Mul(decimal.NewFromInt32(quantity))
}
