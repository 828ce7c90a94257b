package service

import (
	"slices"
	"sync"

	"github.com/mwallace/shopfront/internal/domain"
)

// cartService is the in-memory cart store for one shopper session.
//
// Every mutation recomputes the derived total from the line items, so
// total == sum(price x quantity) holds for every observable state. The
// mutex exists because two HTTP requests for the same session can land
// concurrently; mutations never block on anything else, so a torn read of
// items vs total cannot be observed.
type cartService struct {
	mu    sync.Mutex
	items []domain.LineItem
	total float64
}

// NewCartService creates an empty cart store.
func NewCartService() domain.CartService {
	return &cartService{}
}

// Add merges quantity units of product into the cart, or appends a new
// line item at the end of the sequence. Quantities < 1 are ignored.
// Stock ceilings are not checked here; the handler boundary validates the
// requested quantity against the product snapshot first.
func (s *cartService) Add(product domain.Product, quantity int) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.summaryLocked()
	}

	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.LineItem{Product: product, Quantity: quantity})
	}

	s.total = domain.CartTotal(s.items)
	return s.summaryLocked()
}

// Remove drops the line item for productID. No-op if absent.
func (s *cartService) Remove(productID int64) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(li domain.LineItem) bool {
		return li.Product.ID == productID
	})

	s.total = domain.CartTotal(s.items)
	return s.summaryLocked()
}

// UpdateQuantity sets the matching line item's quantity. A quantity <= 0
// removes the line item entirely. No-op if the product is not in the cart.
func (s *cartService) UpdateQuantity(productID int64, quantity int) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = slices.Delete(s.items, i, i+1)
		} else {
			s.items[i].Quantity = quantity
		}
		break
	}

	s.total = domain.CartTotal(s.items)
	return s.summaryLocked()
}

// Clear resets the cart to empty.
func (s *cartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.total = 0
}

// Summary returns the current cart state.
func (s *cartService) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summaryLocked()
}

// TotalItemCount returns the sum of quantities across all line items.
func (s *cartService) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return itemCountLocked(s.items)
}

// summaryLocked builds a snapshot of the cart. Callers must hold s.mu.
// Items are copied so callers never share the store's backing slice.
func (s *cartService) summaryLocked() domain.CartSummary {
	items := slices.Clone(s.items)
	if items == nil {
		// An empty cart serializes as {"items": [], "total": 0}.
		items = []domain.LineItem{}
	}

	return domain.CartSummary{
		Items:     items,
		Total:     s.total,
		ItemCount: itemCountLocked(s.items),
	}
}

func itemCountLocked(items []domain.LineItem) int {
	count := 0
	for _, li := range items {
		count += li.Quantity
	}
	return count
}
