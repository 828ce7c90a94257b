package routes

import (
	"github.com/mwallace/shopfront/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the storefront API routes
type StorefrontDeps struct {
	// Catalog browsing
	ProductHandler *storefront.ProductHandler

	// Cart
	CartHandler *storefront.CartHandler

	// Purchase
	PurchaseHandler *storefront.PurchaseHandler
}
