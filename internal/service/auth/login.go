package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Login authenticates an identity with email + password.
// Unknown email, missing password and wrong password all return
// ErrInvalidCredential so callers cannot tell them apart.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.identities.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("auth.Login get identity: %w", err)
	}

	if !identity.HasPassword() {
		return nil, domain.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.issueTokens(txCtx, identity, input.RememberMe)
		if err != nil {
			return err
		}
		return s.audit.Append(txCtx, identityEntry(domain.AuditActionLogin, identity.ID, &identity.ID, map[string]any{
			"rememberMe": input.RememberMe,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.log.InfoContext(ctx, "identity logged in",
		slog.String("identity_id", identity.ID.String()))

	return result, nil
}
