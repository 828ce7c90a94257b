package domain

import "context"

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Product is a catalog entry as served by the remote inventory service.
// Products are owned by the inventory service and treated as immutable
// snapshots once fetched; the cart keeps the snapshot it was handed.
type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	Price             float64 `json:"price"`
	StockLevel        int     `json:"stock_level"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
}

// IsOutOfStock reports whether no units are purchasable.
func (p Product) IsOutOfStock() bool {
	return p.StockLevel <= 0
}

// IsLowStock reports whether the stock level has fallen to or below the
// product's low stock threshold. An out-of-stock product is not "low".
func (p Product) IsLowStock() bool {
	return !p.IsOutOfStock() && p.StockLevel <= p.LowStockThreshold
}

// CatalogService provides read access to the remote product catalog.
// Implementations may serve cached snapshots; see CatalogInvalidator.
type CatalogService interface {
	// ListProducts returns the full catalog.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct returns a single product by id.
	// Returns an ENOTFOUND error if the product does not exist.
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// InventoryService is the full inventory collaborator contract: catalog
// reads plus the purchase write endpoint.
type InventoryService interface {
	CatalogService

	// PurchaseProduct submits a purchase of quantity units against the
	// product's remote stock. Exactly one attempt is made; the caller
	// decides whether to retry. A rejection carries the collaborator's
	// message when one was provided.
	PurchaseProduct(ctx context.Context, productID int64, quantity int) error
}

// CatalogInvalidator marks cached catalog reads as stale so the next read
// re-fetches authoritative data from the inventory service.
type CatalogInvalidator interface {
	Invalidate()
}
