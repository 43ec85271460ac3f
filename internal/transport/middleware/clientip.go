package middleware

import (
	"net"
	"net/http"

	"github.com/heartmarshall/zine-backend/internal/ratelimit"
)

// ClientIP returns the original client address: the first X-Forwarded-For
// entry set by the trusted proxy, else the connection's remote host.
func ClientIP(r *http.Request) string {
	if ip := ratelimit.FirstForwardedFor(r); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
