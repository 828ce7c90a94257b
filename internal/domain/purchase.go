package domain

import "context"

// =============================================================================
// PURCHASE DOMAIN TYPES
// =============================================================================

// PurchaseStatus tracks a single purchase attempt. An attempt enters
// Pending when the orchestrator is invoked and settles exactly once as
// Succeeded or Failed. There is no cancelled state: an in-flight request
// cannot be aborted by the shopper.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseSucceeded PurchaseStatus = "succeeded"
	PurchaseFailed    PurchaseStatus = "failed"
)

// PurchaseRequest is the transient body sent to the inventory service's
// purchase endpoint. It is constructed per attempt and never retried
// automatically.
type PurchaseRequest struct {
	ProductID int64 `json:"-"`
	Quantity  int   `json:"quantity"`
}

// PurchaseService orchestrates a shopper's buy intent: one remote purchase
// call, followed on success by catalog cache invalidation so every reader
// sees fresh stock on its next fetch. A failure carries the collaborator's
// message (or a generic fallback) and mutates no local state; the shopper
// may retry by calling Purchase again.
type PurchaseService interface {
	Purchase(ctx context.Context, productID int64, quantity int) error
}
