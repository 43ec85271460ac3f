package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Logout revokes every refresh session of identityID. A nil identity is a
// no-op: the caller only clears cookies.
func (s *Service) Logout(ctx context.Context, identityID *uuid.UUID) error {
	if identityID == nil {
		return nil
	}

	var revoked int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		revoked, err = s.sessions.RevokeAllByIdentity(txCtx, *identityID, s.now())
		if err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return s.audit.Append(txCtx, identityEntry(domain.AuditActionLogout, *identityID, identityID, map[string]any{
			"revokedSessions": revoked,
		}))
	})
	if err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "identity logged out",
		slog.String("identity_id", identityID.String()),
		slog.Int("revoked", revoked))
	return nil
}

// CleanupExpiredTokens removes expired and revoked refresh sessions.
// Returns the number of rows deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	count, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up refresh sessions", slog.Int("count", count))
	}

	return count, nil
}
