package catalog

import "github.com/mwallace/shopfront/internal/domain"

// Product errors - use domain.ENOTFOUND
var (
	ErrProductNotFound = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
)

// User-facing fallback messages, substituted when the inventory service
// fails without a parseable error body.
const (
	FallbackPurchaseMessage = "Purchase failed. Please try again."
	FallbackFetchMessage    = "Unable to load products. Please try again."
)
