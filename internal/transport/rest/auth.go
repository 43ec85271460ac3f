package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/auth"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
)

//go:generate moq -out auth_service_mock_test.go -pkg rest . authService

type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context, identityID *uuid.UUID) error
	Me(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	svc     authService
	errs    *Errors
	cookies cookieJar
	log     *slog.Logger
}

// NewAuthHandler creates an AuthHandler. secureCookies marks the session
// cookies Secure.
func NewAuthHandler(svc authService, errs *Errors, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		errs:    errs,
		cookies: newCookieJar(secureCookies),
		log:     logger.With("handler", "auth"),
	}
}

type registerRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	h.cookies.set(w, result.Tokens)
	writeJSON(w, http.StatusCreated, userEnvelope{User: toIdentityResponse(result.Identity)})
}

// Login handles POST /auth/login. Failures set no cookies.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	h.cookies.set(w, result.Tokens)
	writeJSON(w, http.StatusOK, userEnvelope{User: toIdentityResponse(result.Identity)})
}

// Refresh handles POST /auth/refresh using the refreshToken cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Refresh(r.Context(), auth.RefreshInput{
		RefreshToken: refreshTokenFromCookie(r),
	})
	if err != nil {
		h.cookies.clear(w)
		h.errs.WriteError(w, r, err)
		return
	}

	h.cookies.set(w, result.Tokens)
	writeJSON(w, http.StatusOK, userEnvelope{User: toIdentityResponse(result.Identity)})
}

// Logout handles POST /auth/logout. Cookies are cleared even for anonymous
// callers; a known caller also loses every refresh session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var identityID *uuid.UUID
	if p, ok := middleware.PrincipalFromCtx(r.Context()); ok {
		identityID = &p.IdentityID
	}

	if err := h.svc.Logout(r.Context(), identityID); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	h.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	identity, err := h.svc.Me(r.Context(), p.IdentityID)
	if errors.Is(err, domain.ErrNotFound) {
		err = fmt.Errorf("identity %s no longer exists: %w", p.IdentityID, domain.ErrUnauthenticated)
	}
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: toIdentityResponse(identity)})
}
