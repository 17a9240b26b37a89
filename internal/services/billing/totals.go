package billing

import (
	"math"

	"business-management-backend/internal/models"
)

// TaxRate applied to taxable line items.
const TaxRate = 0.08

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals folds the line items into subtotal, tax and total.
// The effective unit value of an item is unit price scaled down by its
// discount fraction; tax accrues only on taxable items. An empty list
// yields all zeros. Input is not mutated.
func ComputeTotals(items []models.InvoiceItem) Totals {
	var t Totals
	for _, item := range items {
		effective := item.UnitPrice * (1 - item.Discount)
		line := effective * float64(item.Quantity)
		t.Subtotal += line
		if item.Taxable {
			t.Tax += line * TaxRate
		}
	}
	t.Total = t.Subtotal + t.Tax
	return t
}

// Round2 rounds a monetary amount to cents. Totals are kept at full
// float precision internally and rounded only at the response edge.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of the totals rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Round2(t.Subtotal),
		Tax:      Round2(t.Tax),
		Total:    Round2(t.Total),
	}
}
