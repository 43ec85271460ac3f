package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an account that can act on the platform. Anonymous
// contributors have no identity at all; registered ones may still lack
// an email or password.
type Identity struct {
	ID           uuid.UUID
	Email        *string
	DisplayName  string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmailOrEmpty returns the email address or "" when none is set.
func (i *Identity) EmailOrEmpty() string {
	if i.Email == nil {
		return ""
	}
	return *i.Email
}

// HasPassword reports whether the identity can log in with a password.
func (i *Identity) HasPassword() bool {
	return i.PasswordHash != nil && *i.PasswordHash != ""
}

// RefreshSession tracks an issued refresh token by the hash of its jti so
// that rotation can invalidate the previous token.
type RefreshSession struct {
	ID         uuid.UUID
	IdentityID uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	RevokedAt  *time.Time
}

// IsRevoked returns true if the session has been revoked.
func (s *RefreshSession) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired returns true if the session has expired relative to now.
func (s *RefreshSession) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
