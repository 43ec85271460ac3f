package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Me returns the identity behind an authenticated request.
func (s *Service) Me(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return identity, nil
}

// Promote changes the role of an existing identity. It is the only way to
// obtain MODERATOR or ADMIN and is reachable from the command line only.
func (s *Service) Promote(ctx context.Context, input PromoteInput) (*domain.Identity, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Identity
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.identities.GetByEmail(txCtx, input.Email)
		if err != nil {
			return fmt.Errorf("get identity: %w", err)
		}

		updated, err = s.identities.UpdateRole(txCtx, current.ID, input.Role, s.now())
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}

		return s.audit.Append(txCtx, identityEntry(domain.AuditActionPromoteIdentity, current.ID, input.ActorID, map[string]any{
			"oldRole": current.Role.String(),
			"newRole": updated.Role.String(),
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Promote: %w", err)
	}

	s.log.InfoContext(ctx, "identity role changed",
		slog.String("identity_id", updated.ID.String()),
		slog.String("role", updated.Role.String()))
	return updated, nil
}
