package routes

import (
	"github.com/mwallace/shopfront/internal/middleware"
	"github.com/mwallace/shopfront/internal/router"
)

// RegisterStorefrontRoutes registers the JSON API consumed by the browser
// storefront.
//
// The purchase route gets its own, stricter rate limit: catalog browsing
// is bursty by nature, but purchase submissions arrive at human speed.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog browsing
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)

	// Purchase
	purchaseLimit := middleware.RateLimit(middleware.PurchaseRateLimiterConfig())
	r.Post("/api/products/{id}/purchase", deps.PurchaseHandler.Purchase, purchaseLimit)

	// Shopping cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Delete("/api/cart", deps.CartHandler.Clear)
	r.Post("/api/cart/items", deps.CartHandler.Add)
	r.Put("/api/cart/items/{id}", deps.CartHandler.Update)
	r.Delete("/api/cart/items/{id}", deps.CartHandler.Remove)
}
