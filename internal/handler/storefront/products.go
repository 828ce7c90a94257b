package storefront

import (
	"net/http"
	"strconv"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/handler"
	"github.com/mwallace/shopfront/internal/telemetry"
)

// ProductHandler serves catalog reads. Reads go through the catalog
// cache, so repeated browsing does not hammer the inventory service.
type ProductHandler struct {
	catalog domain.CatalogService
	metrics *telemetry.BusinessMetrics
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog domain.CatalogService, metrics *telemetry.BusinessMetrics) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		metrics: metrics,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ProductListViews.Inc()
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ProductViews.WithLabelValues(strconv.FormatInt(id, 10)).Inc()
	}

	handler.RespondJSON(w, http.StatusOK, product)
}

// parseProductID extracts the {id} path segment as a positive integer.
func parseProductID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("storefront.parseProductID", "Product id must be a positive integer")
	}
	return id, nil
}
