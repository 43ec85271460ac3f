package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Refresh verifies a refresh token, reloads its identity and issues a new
// pair with the same remember-me lifetime.
//
// With rotation enabled the old session is revoked before the new pair is
// issued, in one transaction. Presenting a revoked token again revokes every
// session of the identity; losing a concurrent rotation is ErrInvalidCredential.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if input.RefreshToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.tokens.VerifyRefresh(input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}

	var session *domain.RefreshSession
	if s.cfg.RevokeOnRotate {
		session, err = s.sessions.GetByHash(ctx, auth.HashToken(claims.TokenID))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "refresh with unknown session",
					slog.String("identity_id", claims.IdentityID.String()))
				return nil, domain.ErrInvalidCredential
			}
			return nil, fmt.Errorf("auth.Refresh get session: %w", err)
		}
		if session.IdentityID != claims.IdentityID {
			return nil, domain.ErrInvalidCredential
		}
		if session.IsRevoked() {
			n, err := s.sessions.RevokeAllByIdentity(ctx, claims.IdentityID, s.now())
			if err != nil {
				return nil, fmt.Errorf("auth.Refresh revoke on reuse: %w", err)
			}
			s.log.WarnContext(ctx, "refresh token reuse detected",
				slog.String("identity_id", claims.IdentityID.String()),
				slog.Int("revoked", n))
			return nil, domain.ErrInvalidCredential
		}
	}

	identity, err := s.identities.GetByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted identity",
				slog.String("identity_id", claims.IdentityID.String()))
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("auth.Refresh get identity: %w", err)
	}

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if session != nil {
			if err := s.sessions.Revoke(txCtx, session.ID, s.now()); err != nil {
				// Another refresh rotated this token first.
				if errors.Is(err, domain.ErrNotFound) {
					s.log.WarnContext(ctx, "refresh session already rotated",
						slog.String("identity_id", claims.IdentityID.String()))
					return domain.ErrInvalidCredential
				}
				return fmt.Errorf("revoke session: %w", err)
			}
		}
		var err error
		result, err = s.issueTokens(txCtx, identity, claims.RememberMe)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}

	return result, nil
}
