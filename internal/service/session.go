package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mwallace/shopfront/internal/domain"
)

// GenerateSessionID generates a cryptographically secure session ID
// Uses 32 bytes of random data encoded as base64 URL-safe string
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// SessionStore maps shopper session IDs to their in-memory carts.
//
// Carts live only in process memory: a session that expires (or a server
// restart) loses its cart contents. That is the intended lifecycle - the
// cart is disposable optimistic state, the inventory service owns truth.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	logger   *slog.Logger
}

type session struct {
	cart     domain.CartService
	lastSeen time.Time
}

// NewSessionStore creates a session store. Sessions idle longer than ttl
// are eligible for pruning.
func NewSessionStore(ttl time.Duration, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		logger:   logger,
	}
}

// GetOrCreateCart returns the cart for sessionID, creating a new session
// (and empty cart) when the ID is empty or unknown. Returns the cart and
// the session ID to hand back to the shopper, which differs from the
// input when a new session was created.
func (s *SessionStore) GetOrCreateCart(sessionID string) (domain.CartService, string, error) {
	if sessionID != "" {
		if cart, ok := s.GetCart(sessionID); ok {
			return cart, sessionID, nil
		}
	}

	newID, err := GenerateSessionID()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	cart := NewCartService()

	s.mu.Lock()
	s.sessions[newID] = &session{cart: cart, lastSeen: time.Now()}
	s.mu.Unlock()

	s.logger.Debug("session created", "session_id", newID)
	return cart, newID, nil
}

// GetCart returns the cart for an existing session and refreshes its idle
// timer. Returns false when the session is unknown or already pruned.
func (s *SessionStore) GetCart(sessionID string) (domain.CartService, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}

	sess.lastSeen = time.Now()
	return sess.cart, true
}

// Delete drops a session and its cart.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// PruneExpired drops sessions idle longer than the configured TTL and
// returns how many were removed.
func (s *SessionStore) PruneExpired() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}

	return pruned
}

// RunCleanup prunes expired sessions on the given interval until ctx is
// cancelled. Run it in its own goroutine from main.
func (s *SessionStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := s.PruneExpired(); pruned > 0 {
				s.logger.Info("pruned idle sessions", "count", pruned, "remaining", s.Len())
			}
		}
	}
}
