package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwallace/shopfront/internal/domain"
)

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) domain.CartSummary {
	t.Helper()
	var summary domain.CartSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	return summary
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestCartHandler_ViewWithoutSession(t *testing.T) {
	h := NewCartHandler(newTestSessions(), &fakeCatalog{}, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"item_count":0}`, w.Body.String())
}

func TestCartHandler_AddCreatesSession(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 2}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.InDelta(t, 19.98, summary.Total, 0.001)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestCartHandler_AddMergesAcrossRequests(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	first := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 2}`))
	w1 := httptest.NewRecorder()
	mux.ServeHTTP(w1, first)
	require.Equal(t, http.StatusOK, w1.Code)
	cookie := sessionCookie(t, w1)

	second := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 3}`))
	second.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, second)
	require.Equal(t, http.StatusOK, w2.Code)

	summary := decodeSummary(t, w2)
	require.Len(t, summary.Items, 1, "same product merges into one line")
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.InDelta(t, 49.95, summary.Total, 0.001)
}

func TestCartHandler_AddUnknownProduct(t *testing.T) {
	h := NewCartHandler(newTestSessions(), &fakeCatalog{}, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 99, "quantity": 1}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_AddExceedingStock(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 11}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Requested quantity exceeds available stock"}`, w.Body.String())
}

func TestCartHandler_AddInvalidBody(t *testing.T) {
	h := NewCartHandler(newTestSessions(), &fakeCatalog{}, nil, false)
	mux := newCartMux(h)

	tests := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"product_id": 5, "quantity": 0}`},
		{"negative quantity", `{"product_id": 5, "quantity": -1}`},
		{"missing product", `{"quantity": 1}`},
		{"malformed", `{"product_id": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCartHandler_UpdateToZeroRemovesItem(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	add := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 2}`))
	w1 := httptest.NewRecorder()
	mux.ServeHTTP(w1, add)
	cookie := sessionCookie(t, w1)

	update := httptest.NewRequest(http.MethodPut, "/api/cart/items/5",
		strings.NewReader(`{"quantity": 0}`))
	update.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, update)

	require.Equal(t, http.StatusOK, w2.Code)
	summary := decodeSummary(t, w2)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Total)
}

func TestCartHandler_UpdateWithoutSession(t *testing.T) {
	h := NewCartHandler(newTestSessions(), &fakeCatalog{}, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/5",
		strings.NewReader(`{"quantity": 1}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_RemoveAbsentItemIsNoop(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	add := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 2}`))
	w1 := httptest.NewRecorder()
	mux.ServeHTTP(w1, add)
	cookie := sessionCookie(t, w1)

	remove := httptest.NewRequest(http.MethodDelete, "/api/cart/items/99", nil)
	remove.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, remove)

	require.Equal(t, http.StatusOK, w2.Code)
	summary := decodeSummary(t, w2)
	assert.Len(t, summary.Items, 1, "removing an absent product leaves the cart unchanged")
}

func TestCartHandler_ClearWithoutSession(t *testing.T) {
	h := NewCartHandler(newTestSessions(), &fakeCatalog{}, nil, false)
	mux := newCartMux(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"item_count":0}`, w.Body.String())
}

func TestCartHandler_Clear(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{widget()}}
	h := NewCartHandler(newTestSessions(), catalog, nil, false)
	mux := newCartMux(h)

	add := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"product_id": 5, "quantity": 2}`))
	w1 := httptest.NewRecorder()
	mux.ServeHTTP(w1, add)
	cookie := sessionCookie(t, w1)

	clear := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	clear.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, clear)

	require.Equal(t, http.StatusOK, w2.Code)
	summary := decodeSummary(t, w2)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.ItemCount)
}
