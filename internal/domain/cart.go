package domain

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// LineItem is one product/quantity pairing inside a cart.
// Quantity is always >= 1 for a stored item; a mutation that would drive it
// to zero or below removes the line item instead.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns the line's price x quantity, rounded to cents.
func (li LineItem) Subtotal() float64 {
	return LineSubtotal(li.Product.Price, li.Quantity)
}

// CartSummary is a point-in-time view of a cart: its line items in
// insertion order, the derived total, and the total unit count.
// Total is always recomputed from Items, never carried independently.
type CartSummary struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// CartService maintains one shopper's cart. All mutations are total
// functions: invalid arguments are ignored or clamped, never surfaced as
// errors, because the cart is local session state rather than a service
// boundary. Each mutation returns the resulting summary.
//
// The store does not enforce stock ceilings; callers validate requested
// quantities against the product snapshot before mutating.
type CartService interface {
	// Add merges quantity units of product into the cart. An existing line
	// item for the same product id has its quantity incremented; otherwise
	// a new line item is appended, preserving insertion order.
	Add(product Product, quantity int) CartSummary

	// Remove drops the line item for productID. No-op if absent.
	Remove(productID int64) CartSummary

	// UpdateQuantity sets the line item's quantity. A quantity <= 0
	// removes the line item entirely.
	UpdateQuantity(productID int64, quantity int) CartSummary

	// Clear resets the cart to empty.
	Clear()

	// Summary returns the current cart state.
	Summary() CartSummary

	// TotalItemCount returns the sum of quantities across all line items
	// (distinct from the number of line items).
	TotalItemCount() int
}
