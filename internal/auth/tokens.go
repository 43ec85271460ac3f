package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Token verification failures. Both wrap domain.ErrInvalidCredential so the
// transport layer maps them to 401 without knowing about JWTs.
var (
	ErrInvalidToken = fmt.Errorf("invalid token: %w", domain.ErrInvalidCredential)
	ErrExpiredToken = fmt.Errorf("token expired: %w", domain.ErrInvalidCredential)
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// TokenService issues and verifies HS256 access/refresh token pairs. It
// never touches the store.
type TokenService struct {
	secret      []byte
	issuer      string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewTokenService creates a TokenService from auth settings.
// cfg.JWTSecret must be at least 32 characters (enforced by config.Validate).
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:      []byte(cfg.JWTSecret),
		issuer:      cfg.JWTIssuer,
		accessTTL:   cfg.AccessTokenTTL,
		refreshTTL:  cfg.RefreshTokenTTL,
		rememberTTL: cfg.RememberMeTTL,
		now:         time.Now,
	}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// AccessClaims is what a verified access token asserts.
type AccessClaims struct {
	IdentityID uuid.UUID
	Email      string
	Role       domain.Role
	ExpiresAt  time.Time
}

// RefreshClaims is what a verified refresh token asserts. TokenID is the jti
// used for rotation bookkeeping.
type RefreshClaims struct {
	IdentityID uuid.UUID
	TokenID    string
	RememberMe bool
	ExpiresAt  time.Time
}

// TokenPair is always minted together for one identity.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshID        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	Type  string `json:"typ"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
	Type     string `json:"typ"`
	Remember bool   `json:"rme,omitempty"`
}

// Issue mints a new access+refresh pair for identity. rememberMe selects the
// long refresh lifetime.
func (s *TokenService) Issue(identity *domain.Identity, rememberMe bool) (TokenPair, error) {
	if identity == nil || identity.ID == uuid.Nil {
		return TokenPair{}, fmt.Errorf("issue tokens: identity is required")
	}
	if !identity.Role.IsValid() {
		return TokenPair{}, fmt.Errorf("issue tokens: invalid role %q", identity.Role)
	}

	now := s.now()
	accessExp := now.Add(s.accessTTL)
	refreshExp := now.Add(s.refreshTTL)
	if rememberMe {
		refreshExp = now.Add(s.rememberTTL)
	}

	access, err := s.sign(accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
		Email: identity.EmailOrEmpty(),
		Role:  identity.Role.String(),
		Type:  typeAccess,
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	jti := uuid.NewString()
	refresh, err := s.sign(refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   identity.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
		Type:     typeRefresh,
		Remember: rememberMe,
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshID:        jti,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess validates an access token and returns its claims.
// Returns ErrExpiredToken after expiry and ErrInvalidToken otherwise.
func (s *TokenService) VerifyAccess(token string) (AccessClaims, error) {
	var c accessClaims
	if err := s.parse(token, &c); err != nil {
		return AccessClaims{}, err
	}
	if c.Type != typeAccess {
		return AccessClaims{}, fmt.Errorf("%w: wrong token type %q", ErrInvalidToken, c.Type)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return AccessClaims{}, fmt.Errorf("%w: subject is not a UUID", ErrInvalidToken)
	}
	role := domain.Role(c.Role)
	if !role.IsValid() {
		return AccessClaims{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}

	return AccessClaims{
		IdentityID: id,
		Email:      c.Email,
		Role:       role,
		ExpiresAt:  c.ExpiresAt.Time,
	}, nil
}

// VerifyRefresh validates a refresh token and returns the identity it
// belongs to plus its jti.
func (s *TokenService) VerifyRefresh(token string) (RefreshClaims, error) {
	var c refreshClaims
	if err := s.parse(token, &c); err != nil {
		return RefreshClaims{}, err
	}
	if c.Type != typeRefresh {
		return RefreshClaims{}, fmt.Errorf("%w: wrong token type %q", ErrInvalidToken, c.Type)
	}
	if c.ID == "" {
		return RefreshClaims{}, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return RefreshClaims{}, fmt.Errorf("%w: subject is not a UUID", ErrInvalidToken)
	}

	return RefreshClaims{
		IdentityID: id,
		TokenID:    c.ID,
		RememberMe: c.Remember,
		ExpiresAt:  c.ExpiresAt.Time,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

func (s *TokenService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(token string, claims jwt.Claims) error {
	if token == "" {
		return fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

// HashToken computes the SHA-256 hash of a token identifier and returns it
// as a hex string. Only hashes of refresh jtis are stored.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
