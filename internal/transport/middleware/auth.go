package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/pkg/ctxutil"
)

//go:generate moq -out principal_resolver_mock_test.go -pkg middleware . principalResolver

type principalResolver interface {
	Resolve(r *http.Request) (auth.Principal, error)
	RequireRole(r *http.Request, allowed ...domain.Role) (auth.Principal, error)
}

type principalKey struct{}

// PrincipalFromCtx returns the caller resolved by Authenticate or RequireRole.
func PrincipalFromCtx(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

func withPrincipal(ctx context.Context, p auth.Principal) context.Context {
	ctx = context.WithValue(ctx, principalKey{}, p)
	ctx = ctxutil.WithUserID(ctx, p.IdentityID)
	ctx = ctxutil.WithRole(ctx, p.Role.String())
	annotateIdentity(ctx, p.IdentityID.String(), p.Role.String())
	return ctx
}

// Authenticate resolves the caller when a credential is present and stores
// it in the context. Requests without a valid credential continue
// anonymously; routes that need a caller sit behind RequireRole.
func Authenticate(resolver principalResolver, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithClientIP(r.Context(), ClientIP(r))

			p, err := resolver.Resolve(r)
			switch {
			case err == nil:
				ctx = withPrincipal(ctx, p)
			case errors.Is(err, domain.ErrUnauthenticated):
			default:
				logger.DebugContext(ctx, "credential rejected, continuing anonymously",
					slog.String("error", err.Error()))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
