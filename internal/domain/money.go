package domain

import "math"

// Prices arrive from the inventory service as decimal dollar amounts, so
// totals are computed in float64 and rounded to cents at every step. A cart
// total is only ever displayed to two decimal places and the stored total
// must match that display exactly.

// RoundCents rounds a dollar amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineSubtotal returns price x quantity rounded to cents.
func LineSubtotal(price float64, quantity int) float64 {
	return RoundCents(price * float64(quantity))
}

// CartTotal recomputes a cart total from its line items.
func CartTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return RoundCents(total)
}
