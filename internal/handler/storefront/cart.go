package storefront

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/handler"
	"github.com/mwallace/shopfront/internal/service"
	"github.com/mwallace/shopfront/internal/telemetry"
)

// CartHandler handles all cart-related storefront routes.
//
// Carts are keyed by the session cookie. Reads never create a session;
// mutations create one on demand and hand the cookie back.
type CartHandler struct {
	sessions *service.SessionStore
	catalog  domain.CatalogService
	metrics  *telemetry.BusinessMetrics
	secure   bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *service.SessionStore, catalog domain.CatalogService, metrics *telemetry.BusinessMetrics, secure bool) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
		metrics:  metrics,
		secure:   secure,
	}
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type updateItemRequest struct {
	// Pointer so an explicit zero survives validation; zero or negative
	// quantity removes the item.
	Quantity *int `json:"quantity" validate:"required"`
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionIDFromCookie(r)
	if sessionID != "" {
		if cart, ok := h.sessions.GetCart(sessionID); ok {
			handler.RespondJSON(w, http.StatusOK, cart.Summary())
			return
		}
	}

	// No session yet: an empty cart, without allocating one.
	handler.RespondJSON(w, http.StatusOK, domain.CartSummary{Items: []domain.LineItem{}})
}

// Add handles POST /api/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	// The snapshot the shopper is looking at bounds what they can add.
	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	if req.Quantity > product.StockLevel {
		handler.RespondError(w, r, domain.Invalid("storefront.CartAdd", "Requested quantity exceeds available stock"))
		return
	}

	sessionID := GetSessionIDFromCookie(r)
	cart, newSessionID, err := h.sessions.GetOrCreateCart(sessionID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	if newSessionID != sessionID {
		SetSessionCookie(w, newSessionID, h.secure)
	}

	summary := cart.Add(*product, req.Quantity)

	if h.metrics != nil {
		h.metrics.CartItemsAdded.WithLabelValues(strconv.FormatInt(req.ProductID, 10)).Inc()
		h.metrics.CartValue.Observe(summary.Total)
	}

	handler.RespondJSON(w, http.StatusOK, summary)
}

// Update handles PUT /api/cart/items/{id}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	var req updateItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	quantity := *req.Quantity

	cart, err := h.requireCart(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	// Bound increases by the latest stock snapshot. A stale snapshot is
	// fine; the purchase path re-checks against the inventory service.
	if quantity > 0 {
		product, err := h.catalog.GetProduct(r.Context(), productID)
		if err == nil && quantity > product.StockLevel {
			handler.RespondError(w, r, domain.Invalid("storefront.CartUpdate", "Requested quantity exceeds available stock"))
			return
		}
	}

	summary := cart.UpdateQuantity(productID, quantity)

	if h.metrics != nil {
		h.metrics.CartUpdated.Inc()
		h.metrics.CartValue.Observe(summary.Total)
	}

	handler.RespondJSON(w, http.StatusOK, summary)
}

// Remove handles DELETE /api/cart/items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	cart, err := h.requireCart(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	summary := cart.Remove(productID)

	if h.metrics != nil {
		h.metrics.CartItemsRemoved.Inc()
		h.metrics.CartValue.Observe(summary.Total)
	}

	handler.RespondJSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.requireCart(r)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			// Clearing a cart that never existed is a no-op.
			handler.RespondJSON(w, http.StatusOK, domain.CartSummary{Items: []domain.LineItem{}})
			return
		}
		handler.RespondError(w, r, err)
		return
	}

	cart.Clear()

	if h.metrics != nil {
		h.metrics.CartCleared.Inc()
	}

	handler.RespondJSON(w, http.StatusOK, cart.Summary())
}

// requireCart resolves the shopper's existing cart from the session
// cookie. Mutating a line item in a cart that does not exist is a 404.
func (h *CartHandler) requireCart(r *http.Request) (domain.CartService, error) {
	sessionID := GetSessionIDFromCookie(r)
	if sessionID == "" {
		return nil, service.ErrSessionNotFound
	}

	cart, ok := h.sessions.GetCart(sessionID)
	if !ok {
		return nil, service.ErrSessionNotFound
	}

	return cart, nil
}
