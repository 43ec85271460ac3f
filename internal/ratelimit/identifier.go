package ratelimit

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/zine-backend/pkg/ctxutil"
)

// UnknownIdentifier is the shared bucket for callers that carry neither an
// identity nor a forwarded address.
const UnknownIdentifier = "unknown"

// Identifier picks the key a request is counted under: the authenticated
// identity, else the first X-Forwarded-For address, else UnknownIdentifier.
func Identifier(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id.String()
	}
	if ip := FirstForwardedFor(r); ip != "" {
		return "ip:" + ip
	}
	return UnknownIdentifier
}

// FirstForwardedFor returns the left-most address of X-Forwarded-For, which
// the trusted proxy sets to the original client.
func FirstForwardedFor(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}
