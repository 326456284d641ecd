package rewards

import "rewardify-backend/models"

// Totals is the server-side breakdown of a transaction's monetary amount.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// ComputeTotals derives a transaction's amount from its items. The discount
// percentage applies to the aggregate subtotal; tax is computed per line
// before the discount. The stored amount always comes from this computation,
// never from client input.
func ComputeTotals(items []models.TransactionItem, discountPercentage float64) Totals {
	var t Totals
	for _, item := range items {
		line := item.Price * float64(item.Quantity)
		t.Subtotal += line
		t.Tax += line * item.TaxRate / 100
	}
	t.DiscountAmount = t.Subtotal * discountPercentage / 100
	t.Total = t.Subtotal - t.DiscountAmount + t.Tax
	return t
}

// TotalAmount is a shorthand for the final amount of ComputeTotals.
func TotalAmount(items []models.TransactionItem, discountPercentage float64) float64 {
	return ComputeTotals(items, discountPercentage).Total
}
