package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the storefront: cart engagement, the purchase funnel, and catalog
// cache behavior.
type BusinessMetrics struct {
	// Product engagement
	ProductViews     *prometheus.CounterVec
	ProductListViews prometheus.Counter

	// Cart
	CartItemsAdded   *prometheus.CounterVec
	CartUpdated      prometheus.Counter
	CartItemsRemoved prometheus.Counter
	CartCleared      prometheus.Counter
	CartValue        prometheus.Histogram

	// Purchases
	PurchaseAttempts  prometheus.Counter
	PurchaseSucceeded prometheus.Counter
	PurchaseFailed    *prometheus.CounterVec
	PurchasesInFlight prometheus.Gauge
	PurchaseUnits     prometheus.Histogram

	// Catalog cache
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations prometheus.Counter

	// External API performance
	InventoryAPILatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics on reg.
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry.
func NewBusinessMetrics(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "shopfront"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		// =======================================================================
		// Product Engagement
		// =======================================================================
		ProductViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_views_total",
				Help:      "Total product detail reads",
			},
			[]string{"product_id"},
		),
		ProductListViews: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_list_views_total",
				Help:      "Total catalog list reads",
			},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartItemsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"product_id"},
		),
		CartUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updates_total",
				Help:      "Total cart quantity updates",
			},
		),
		CartItemsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_removed_total",
				Help:      "Total cart item removals",
			},
		),
		CartCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_cleared_total",
				Help:      "Total cart clear actions",
			},
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value_dollars",
				Help:      "Cart total after each mutation, in dollars",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),

		// =======================================================================
		// Purchase funnel
		// =======================================================================
		PurchaseAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_attempts_total",
				Help:      "Total purchase attempts submitted to the inventory service",
			},
		),
		PurchaseSucceeded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_succeeded_total",
				Help:      "Total purchases accepted by the inventory service",
			},
		),
		PurchaseFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_failed_total",
				Help:      "Total purchases rejected or failed in transport",
			},
			[]string{"reason"}, // reason: rejected, unreachable, invalid
		),
		PurchasesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchases_in_flight",
				Help:      "Purchase attempts currently awaiting the inventory service",
			},
		),
		PurchaseUnits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_units",
				Help:      "Units requested per purchase attempt",
				Buckets:   []float64{1, 2, 3, 5, 10, 25, 50},
			},
		),

		// =======================================================================
		// Catalog cache
		// =======================================================================
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_cache_hits_total",
				Help:      "Catalog reads served from cache",
			},
			[]string{"read"}, // read: list, product
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_cache_misses_total",
				Help:      "Catalog reads that re-fetched from the inventory service",
			},
			[]string{"read"},
		),
		CacheInvalidations: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_cache_invalidations_total",
				Help:      "Catalog cache invalidations (generation bumps)",
			},
		),

		// =======================================================================
		// External API performance
		// =======================================================================
		InventoryAPILatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inventory_api_duration_seconds",
				Help:      "Inventory service request latency",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"endpoint"}, // endpoint: list, get, purchase
		),
	}
}
