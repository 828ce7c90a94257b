package storefront

import (
	"net/http"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/handler"
)

// PurchaseHandler submits purchase attempts to the orchestrator.
type PurchaseHandler struct {
	purchases domain.PurchaseService
	catalog   domain.CatalogService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchases domain.PurchaseService, catalog domain.CatalogService) *PurchaseHandler {
	return &PurchaseHandler{
		purchases: purchases,
		catalog:   catalog,
	}
}

type purchaseRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type purchaseResponse struct {
	Status domain.PurchaseStatus `json:"status"`
}

// Purchase handles POST /api/products/{id}/purchase
//
// One request is exactly one attempt: no retry here and none downstream.
// The inventory service is the authority on stock; the snapshot check
// below only short-circuits requests the storefront UI would never send.
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var req purchaseRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	if req.Quantity > product.StockLevel {
		handler.RespondError(w, r, domain.Invalid("storefront.Purchase", "Requested quantity exceeds available stock"))
		return
	}

	if err := h.purchases.Purchase(r.Context(), productID, req.Quantity); err != nil {
		// domain.ErrorMessage surfaces the inventory service's rejection
		// message verbatim when it sent one.
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, purchaseResponse{Status: domain.PurchaseSucceeded})
}
