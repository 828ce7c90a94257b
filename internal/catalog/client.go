// Package catalog talks to the remote inventory service: catalog reads,
// the purchase write endpoint, and a generational read cache.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/telemetry"
)

// Client implements domain.InventoryService against the inventory
// service's HTTP API:
//
//	GET  {base}/api/products
//	GET  {base}/api/products/{id}
//	POST {base}/api/products/{id}/purchase  {"quantity": n}
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// ClientConfig contains configuration for the inventory client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// Logger defaults to slog.Default(); Metrics is optional.
	Logger  *slog.Logger
	Metrics *telemetry.BusinessMetrics
}

// errorBody is the failure shape the inventory service returns.
type errorBody struct {
	Error string `json:"error"`
}

// NewClient creates an inventory service client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("inventory base URL is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	defer c.observe("list", time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Unavailable(err, "catalog.list", FallbackFetchMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.remoteError(resp, "catalog.list", FallbackFetchMessage)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to decode product list")
	}

	c.logger.Debug("fetched product list", "count", len(products))
	return products, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	defer c.observe("get", time.Now())

	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Unavailable(err, "catalog.get", FallbackFetchMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.remoteError(resp, "catalog.get", FallbackFetchMessage)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, domain.Internal(err, "catalog.get", "failed to decode product")
	}

	return &product, nil
}

// PurchaseProduct submits one purchase attempt. No retry, no idempotency
// key: at most one request reaches the inventory service per call. A
// rejection surfaces the service's error message verbatim when present.
func (c *Client) PurchaseProduct(ctx context.Context, productID int64, quantity int) error {
	defer c.observe("purchase", time.Now())

	body, err := json.Marshal(domain.PurchaseRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return fmt.Errorf("failed to marshal purchase payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/products/%d/purchase", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Unavailable(err, "catalog.purchase", FallbackPurchaseMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(resp, "catalog.purchase", FallbackPurchaseMessage)
	}

	return nil
}

// remoteError converts a non-success response into a domain error,
// preferring the service's own error message over the fallback.
func (c *Client) remoteError(resp *http.Response, op, fallback string) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return domain.Errorf(domain.ECONFLICT, op, "%s", fallback)
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return domain.Conflict(op, body.Error)
	}

	c.logger.Warn("inventory service error without parseable body",
		"op", op,
		"status", resp.StatusCode,
	)
	return domain.Errorf(domain.ECONFLICT, op, "%s", fallback)
}

// observe records request latency for one inventory endpoint.
func (c *Client) observe(endpoint string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.InventoryAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
