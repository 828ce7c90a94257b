package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/telemetry"
)

// Cache is a generational read cache in front of the inventory service.
//
// Every cached entry is stamped with the generation current at fetch time.
// Invalidate bumps the generation, which makes every existing entry stale
// at once - the broadcast the purchase orchestrator relies on. A TTL
// bounds staleness between purchases; readers that miss simply re-fetch,
// there is no locking across the fetch itself.
type Cache struct {
	source  domain.CatalogService
	ttl     time.Duration
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	mu   sync.RWMutex
	gen  uint64
	list *listEntry
	byID map[int64]*productEntry
}

type listEntry struct {
	products  []domain.Product
	gen       uint64
	fetchedAt time.Time
}

type productEntry struct {
	product   domain.Product
	gen       uint64
	fetchedAt time.Time
}

// CacheConfig contains configuration for the catalog cache.
type CacheConfig struct {
	Source  domain.CatalogService
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *telemetry.BusinessMetrics
}

// NewCache creates a catalog cache over source.
func NewCache(cfg CacheConfig) *Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Cache{
		source:  cfg.Source,
		ttl:     ttl,
		logger:  logger,
		metrics: cfg.Metrics,
		byID:    make(map[int64]*productEntry),
	}
}

// ListProducts serves the catalog from cache when fresh, otherwise
// re-fetches from the inventory service.
func (c *Cache) ListProducts(ctx context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	entry, gen := c.list, c.gen
	c.mu.RUnlock()

	if entry != nil && entry.gen == gen && time.Since(entry.fetchedAt) < c.ttl {
		c.hit("list")
		// Callers get their own copy; the cached slice is never shared.
		return slices.Clone(entry.products), nil
	}

	c.miss("list")
	products, err := c.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Stamp with the generation observed before the fetch. An Invalidate
	// racing the fetch bumps c.gen, so this entry is born stale rather
	// than masking the invalidation.
	c.list = &listEntry{products: slices.Clone(products), gen: gen, fetchedAt: time.Now()}
	for _, p := range products {
		c.byID[p.ID] = &productEntry{product: p, gen: gen, fetchedAt: time.Now()}
	}
	c.mu.Unlock()

	return products, nil
}

// GetProduct serves a single product from cache when fresh, otherwise
// re-fetches it from the inventory service.
func (c *Cache) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	entry, gen := c.byID[id], c.gen
	c.mu.RUnlock()

	if entry != nil && entry.gen == gen && time.Since(entry.fetchedAt) < c.ttl {
		c.hit("product")
		product := entry.product
		return &product, nil
	}

	c.miss("product")
	product, err := c.source.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.byID[id] = &productEntry{product: *product, gen: gen, fetchedAt: time.Now()}
	c.mu.Unlock()

	return product, nil
}

// Invalidate bumps the cache generation, marking every cached read stale.
// The next read of any product or of the list re-fetches authoritative
// data. Safe to call from any goroutine; readers are never blocked on a
// re-fetch they didn't ask for.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	// Entries from dead generations can never be served again; drop them
	// so an abandoned catalog doesn't pin memory.
	c.list = nil
	clear(c.byID)
	gen := c.gen
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CacheInvalidations.Inc()
	}
	c.logger.Debug("catalog cache invalidated", "generation", gen)
}

func (c *Cache) hit(read string) {
	if c.metrics != nil {
		c.metrics.CacheHits.WithLabelValues(read).Inc()
	}
}

func (c *Cache) miss(read string) {
	if c.metrics != nil {
		c.metrics.CacheMisses.WithLabelValues(read).Inc()
	}
}
