package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Header and cookie names understood by the Authenticator.
const (
	HeaderIdentityID   = "X-Identity-Id"
	HeaderIdentityRole = "X-Identity-Role"
	AccessCookieName   = "accessToken"
	RefreshCookieName  = "refreshToken"
)

// Source records where a principal's credential came from.
type Source string

const (
	SourceUpstream Source = "upstream"
	SourceBearer   Source = "bearer"
	SourceCookie   Source = "cookie"
)

// Principal is the resolved caller of a request.
type Principal struct {
	IdentityID uuid.UUID
	Email      string
	Role       domain.Role
	Source     Source
}

type accessVerifier interface {
	VerifyAccess(token string) (AccessClaims, error)
}

// Authenticator resolves the caller of an HTTP request and enforces role
// allow-lists.
type Authenticator struct {
	tokens        accessVerifier
	trustUpstream bool
}

// NewAuthenticator creates an Authenticator. When trustUpstream is true the
// X-Identity-* headers set by the reverse proxy are accepted as-is.
func NewAuthenticator(tokens accessVerifier, trustUpstream bool) *Authenticator {
	return &Authenticator{tokens: tokens, trustUpstream: trustUpstream}
}

// Resolve returns the request's principal.
// Fails with domain.ErrUnauthenticated when no credential is present and
// with domain.ErrInvalidCredential when the credential does not verify.
func (a *Authenticator) Resolve(r *http.Request) (Principal, error) {
	if a.trustUpstream {
		if p, ok, err := fromUpstream(r); ok || err != nil {
			return p, err
		}
	}

	token, source := extractToken(r)
	if token == "" {
		return Principal{}, domain.ErrUnauthenticated
	}

	claims, err := a.tokens.VerifyAccess(token)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		IdentityID: claims.IdentityID,
		Email:      claims.Email,
		Role:       claims.Role,
		Source:     source,
	}, nil
}

// RequireRole resolves the principal and checks its role against allowed.
func (a *Authenticator) RequireRole(r *http.Request, allowed ...domain.Role) (Principal, error) {
	p, err := a.Resolve(r)
	if err != nil {
		return Principal{}, err
	}
	if !p.Role.In(allowed...) {
		return Principal{}, fmt.Errorf("role %s not allowed: %w", p.Role, domain.ErrForbidden)
	}
	return p, nil
}

// RequireAdmin allows ADMIN only.
func (a *Authenticator) RequireAdmin(r *http.Request) (Principal, error) {
	return a.RequireRole(r, domain.RoleAdmin)
}

// RequireModerator allows ADMIN and MODERATOR.
func (a *Authenticator) RequireModerator(r *http.Request) (Principal, error) {
	return a.RequireRole(r, domain.RoleAdmin, domain.RoleModerator)
}

func fromUpstream(r *http.Request) (Principal, bool, error) {
	rawID := strings.TrimSpace(r.Header.Get(HeaderIdentityID))
	if rawID == "" {
		return Principal{}, false, nil
	}

	id, err := uuid.Parse(rawID)
	if err != nil || id == uuid.Nil {
		return Principal{}, true, fmt.Errorf("upstream identity header: %w", domain.ErrInvalidCredential)
	}
	role := domain.Role(strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderIdentityRole))))
	if !role.IsValid() {
		return Principal{}, true, fmt.Errorf("upstream role header: %w", domain.ErrInvalidCredential)
	}

	return Principal{IdentityID: id, Role: role, Source: SourceUpstream}, true, nil
}

func extractToken(r *http.Request) (string, Source) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), SourceBearer
		}
	}
	if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
		return c.Value, SourceCookie
	}
	return "", ""
}
