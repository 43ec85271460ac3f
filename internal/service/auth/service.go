package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// identityRepo defines the identity repository interface needed by auth service.
type identityRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, ident *domain.Identity) (*domain.Identity, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role, now time.Time) (*domain.Identity, error)
}

// sessionRepo defines the refresh session repository interface needed by auth service.
type sessionRepo interface {
	Create(ctx context.Context, s *domain.RefreshSession) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error)
	Revoke(ctx context.Context, id uuid.UUID, now time.Time) error
	RevokeAllByIdentity(ctx context.Context, identityID uuid.UUID, now time.Time) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// tokenIssuer mints and verifies token pairs.
type tokenIssuer interface {
	Issue(identity *domain.Identity, rememberMe bool) (auth.TokenPair, error)
	VerifyRefresh(token string) (auth.RefreshClaims, error)
}

// auditLogger appends audit entries using the transaction in ctx.
type auditLogger interface {
	Append(ctx context.Context, e domain.AuditEntry) error
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements registration, login, token rotation and logout.
type Service struct {
	log        *slog.Logger
	identities identityRepo
	sessions   sessionRepo
	tokens     tokenIssuer
	audit      auditLogger
	tx         txManager
	cfg        config.AuthConfig
	now        func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	identities identityRepo,
	sessions sessionRepo,
	tokens tokenIssuer,
	audit auditLogger,
	tx txManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "auth"),
		identities: identities,
		sessions:   sessions,
		tokens:     tokens,
		audit:      audit,
		tx:         tx,
		cfg:        cfg,
		now:        time.Now,
	}
}

// issueTokens mints a pair for identity and, when rotation is enabled,
// records the refresh jti hash so the token can later be revoked.
func (s *Service) issueTokens(ctx context.Context, identity *domain.Identity, rememberMe bool) (*AuthResult, error) {
	pair, err := s.tokens.Issue(identity, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if s.cfg.RevokeOnRotate {
		session := &domain.RefreshSession{
			ID:         uuid.New(),
			IdentityID: identity.ID,
			TokenHash:  auth.HashToken(pair.RefreshID),
			ExpiresAt:  pair.RefreshExpiresAt,
			CreatedAt:  s.now(),
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("store refresh session: %w", err)
		}
	}

	return &AuthResult{Identity: identity, Tokens: pair, RememberMe: rememberMe}, nil
}

func identityEntry(action domain.AuditAction, identityID uuid.UUID, actor *uuid.UUID, details map[string]any) domain.AuditEntry {
	return domain.AuditEntry{
		ActorID:    actor,
		Action:     action,
		EntityType: domain.EntityTypeIdentity,
		EntityID:   identityID,
		Details:    details,
	}
}
