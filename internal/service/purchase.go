package service

import (
	"context"
	"log/slog"

	"github.com/mwallace/shopfront/internal/domain"
	"github.com/mwallace/shopfront/internal/telemetry"
)

// InvalidationPublisher broadcasts a catalog invalidation beyond this
// process, so sibling gateway replicas drop their cached reads too.
type InvalidationPublisher interface {
	PublishInvalidation() error
}

// purchaseService turns a shopper's buy intent into exactly one remote
// purchase call and, on success, an invalidation of cached catalog reads.
//
// Per attempt: pending is entered when Purchase is invoked and settles
// exactly once when the inventory service responds. There is no retry, no
// idempotency key and no cancellation beyond the caller's context; the
// shopper retries by buying again. The cart is never mutated here - a
// purchased item stays in the cart until the shopper removes it.
type purchaseService struct {
	inventory   domain.InventoryService
	invalidator domain.CatalogInvalidator
	publisher   InvalidationPublisher
	metrics     *telemetry.BusinessMetrics
	logger      *slog.Logger
}

// PurchaseConfig contains dependencies for the purchase orchestrator.
// Publisher and Metrics are optional.
type PurchaseConfig struct {
	Inventory   domain.InventoryService
	Invalidator domain.CatalogInvalidator
	Publisher   InvalidationPublisher
	Metrics     *telemetry.BusinessMetrics
	Logger      *slog.Logger
}

// NewPurchaseService creates the purchase orchestrator. Inventory must be
// the uncached client: the write path never goes through the read cache.
func NewPurchaseService(cfg PurchaseConfig) domain.PurchaseService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &purchaseService{
		inventory:   cfg.Inventory,
		invalidator: cfg.Invalidator,
		publisher:   cfg.Publisher,
		metrics:     cfg.Metrics,
		logger:      logger,
	}
}

// Purchase submits one purchase attempt for quantity units of productID.
//
// The handler boundary has already validated quantity against the last
// fetched stock snapshot; the checks here only guard against a direct
// caller handing in garbage. On success the catalog cache is invalidated
// (locally and, when a publisher is wired, across replicas) so the next
// read re-fetches authoritative stock. On failure the returned error
// carries the inventory service's message verbatim when it sent one, and
// no local state changes.
func (s *purchaseService) Purchase(ctx context.Context, productID int64, quantity int) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	logger := s.logger.With(
		"product_id", productID,
		"quantity", quantity,
	)
	logger.Info("purchase pending", "status", domain.PurchasePending)

	if s.metrics != nil {
		s.metrics.PurchaseAttempts.Inc()
		s.metrics.PurchaseUnits.Observe(float64(quantity))
		s.metrics.PurchasesInFlight.Inc()
		defer s.metrics.PurchasesInFlight.Dec()
	}

	if err := s.inventory.PurchaseProduct(ctx, productID, quantity); err != nil {
		if s.metrics != nil {
			s.metrics.PurchaseFailed.WithLabelValues(failureReason(err)).Inc()
		}
		logger.Warn("purchase settled",
			"status", domain.PurchaseFailed,
			"error", err,
		)
		return err
	}

	// Settled successfully: every cached catalog read is now stale.
	s.invalidator.Invalidate()

	if s.publisher != nil {
		// Broadcast failure doesn't unwind the purchase; other replicas
		// fall back on their cache TTL.
		if err := s.publisher.PublishInvalidation(); err != nil {
			logger.Warn("failed to broadcast catalog invalidation", "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.PurchaseSucceeded.Inc()
	}
	logger.Info("purchase settled", "status", domain.PurchaseSucceeded)

	return nil
}

// failureReason buckets a purchase failure for metrics.
func failureReason(err error) string {
	switch domain.ErrorCode(err) {
	case domain.ECONFLICT, domain.ENOTFOUND:
		return "rejected"
	case domain.EUNAVAILABLE:
		return "unreachable"
	case domain.EINVALID:
		return "invalid"
	default:
		return "internal"
	}
}
