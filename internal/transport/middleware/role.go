package middleware

import (
	"net/http"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// ErrorWriter renders an error response. The rest package supplies its
// domain error mapper.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireRole rejects the request unless the caller's credential verifies and
// its role is in allowed. An empty allow-list admits any authenticated caller.
func RequireRole(resolver principalResolver, onError ErrorWriter, allowed ...domain.Role) Middleware {
	if len(allowed) == 0 {
		allowed = []domain.Role{domain.RoleAdmin, domain.RoleModerator, domain.RoleContributor}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := resolver.RequireRole(r, allowed...)
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}
