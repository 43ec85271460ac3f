package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/zine-backend/internal/auth"
)

const refreshCookiePath = "/auth"

// cookieJar writes the session cookies. Tokens only ever travel in these
// HttpOnly cookies, never in response bodies.
type cookieJar struct {
	secure bool
	now    func() time.Time
}

func newCookieJar(secure bool) cookieJar {
	return cookieJar{secure: secure, now: time.Now}
}

func (c cookieJar) set(w http.ResponseWriter, pair auth.TokenPair) {
	now := c.now()
	http.SetCookie(w, c.cookie(auth.AccessCookieName, pair.AccessToken, "/", pair.AccessExpiresAt.Sub(now)))
	http.SetCookie(w, c.cookie(auth.RefreshCookieName, pair.RefreshToken, refreshCookiePath, pair.RefreshExpiresAt.Sub(now)))
}

func (c cookieJar) clear(w http.ResponseWriter) {
	expired := c.cookie(auth.AccessCookieName, "", "/", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	expired = c.cookie(auth.RefreshCookieName, "", refreshCookiePath, 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
}

func (c cookieJar) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if maxAge < 1 && value != "" {
		maxAge = 1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func refreshTokenFromCookie(r *http.Request) string {
	c, err := r.Cookie(auth.RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
