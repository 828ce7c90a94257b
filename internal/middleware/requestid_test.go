package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID_GeneratesAndExposes(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.NotEmpty(t, fromCtx)
	assert.Equal(t, fromCtx, w.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsInboundID(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(RequestIDHeader, "proxy-assigned-id")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "proxy-assigned-id", w.Header().Get(RequestIDHeader))
}
