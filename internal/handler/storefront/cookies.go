package storefront

import (
	"net/http"
)

// SessionCookieName identifies the shopper's cart session.
const SessionCookieName = "shopfront_session"

// sessionCookieMaxAge keeps abandoned carts around for 30 days, matching
// the session registry's idle TTL ceiling.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// GetSessionIDFromCookie retrieves the session ID from the session cookie.
// Returns empty string if the cookie is not present.
func GetSessionIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie sets the session cookie with appropriate security
// settings. SameSite is Lax so top-level navigations from search results
// or emails still carry the cart.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
