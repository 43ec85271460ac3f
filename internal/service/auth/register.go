package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Register creates a CONTRIBUTOR identity and signs it in.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var hash *string
	if input.Password != nil {
		b, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cfg.PasswordHashCost)
		if err != nil {
			return nil, fmt.Errorf("auth.Register hash password: %w", err)
		}
		h := string(b)
		hash = &h
	}

	var result *AuthResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()
		identity, err := s.identities.Create(txCtx, &domain.Identity{
			ID:           uuid.New(),
			Email:        input.Email,
			DisplayName:  input.Name,
			PasswordHash: hash,
			Role:         domain.RoleContributor,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create identity: %w", err)
		}

		err = s.audit.Append(txCtx, identityEntry(domain.AuditActionRegister, identity.ID, &identity.ID, map[string]any{
			"hasEmail":    identity.Email != nil,
			"hasPassword": identity.HasPassword(),
		}))
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		result, err = s.issueTokens(txCtx, identity, false)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "identity registered",
		slog.String("identity_id", result.Identity.ID.String()))

	return result, nil
}
