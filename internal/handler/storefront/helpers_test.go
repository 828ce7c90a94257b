package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/service"
)

// fakeCatalog serves canned products for handler tests.
type fakeCatalog struct {
	products []domain.Product
	err      error
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domain.NotFound("catalog.get", "product", "unknown")
}

// fakePurchases records purchase attempts and returns a canned error.
type fakePurchases struct {
	err   error
	calls int
	lastQ int
	lastP int64
}

func (f *fakePurchases) Purchase(ctx context.Context, productID int64, quantity int) error {
	f.calls++
	f.lastP = productID
	f.lastQ = quantity
	return f.err
}

// newCartMux wires the cart handler onto routes matching production
// patterns so PathValue resolves in tests.
func newCartMux(h *CartHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", h.View)
	mux.HandleFunc("DELETE /api/cart", h.Clear)
	mux.HandleFunc("POST /api/cart/items", h.Add)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.Update)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.Remove)
	return mux
}

func newTestSessions() *service.SessionStore {
	return service.NewSessionStore(time.Hour, nil)
}

func widget() domain.Product {
	return domain.Product{ID: 5, Name: "Widget", SKU: "WID-5", Price: 9.99, StockLevel: 10}
}
