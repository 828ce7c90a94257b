// Package events carries cross-replica storefront events over NATS.
//
// Today that is a single subject: catalog invalidation. A successful
// purchase makes every replica's cached catalog stale, and the broadcast
// is exactly the one-way signal the cache expects - no acknowledgement,
// no ordering, readers just re-fetch on their next access.
package events

import (
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/mwallace/shopfront/internal/domain"
)

// SubjectCatalogInvalidated is published after a settled purchase.
// The message has no payload; receipt alone means "re-fetch".
const SubjectCatalogInvalidated = "shopfront.catalog.invalidated"

// Bus publishes and subscribes to storefront events.
type Bus struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// Connect dials the NATS server at url.
func Connect(url string, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}

	nc, err := nats.Connect(url, nats.Name("shopfront"))
	if err != nil {
		return nil, err
	}

	logger.Info("connected to NATS", "url", url)
	return &Bus{nc: nc, logger: logger}, nil
}

// PublishInvalidation broadcasts a catalog invalidation to all replicas,
// including this one; the local cache was already invalidated in-process
// so the echo is a harmless second generation bump.
func (b *Bus) PublishInvalidation() error {
	return b.nc.Publish(SubjectCatalogInvalidated, nil)
}

// SubscribeInvalidations invalidates inv whenever any replica broadcasts.
// The returned subscription is live until Close.
func (b *Bus) SubscribeInvalidations(inv domain.CatalogInvalidator) (*nats.Subscription, error) {
	return b.nc.Subscribe(SubjectCatalogInvalidated, func(msg *nats.Msg) {
		b.logger.Debug("catalog invalidation received")
		inv.Invalidate()
	})
}

// Close drains the connection, letting in-flight handlers finish.
func (b *Bus) Close() {
	if err := b.nc.Drain(); err != nil {
		b.logger.Warn("failed to drain NATS connection", "error", err)
	}
}
