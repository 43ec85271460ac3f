// Package token implements the refresh-session repository using PostgreSQL.
// Only hashes of refresh token IDs are stored.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

const table = "refresh_tokens"

// Repo provides refresh-session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new token repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new refresh session.
func (r *Repo) Create(ctx context.Context, s *domain.RefreshSession) error {
	query, args, err := postgres.Builder.Insert(table).
		Columns("id", "identity_id", "token_hash", "expires_at", "created_at").
		Values(s.ID, s.IdentityID, s.TokenHash, s.ExpiresAt, s.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build refresh_token insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "refresh_token", s.ID)
	}
	return nil
}

// GetByHash returns the session for a token hash, revoked or not.
// Callers decide what a revoked or expired session means.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	query, args, err := postgres.Builder.
		Select("id", "identity_id", "token_hash", "expires_at", "created_at", "revoked_at").
		From(table).
		Where(squirrel.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build refresh_token select: %w", err)
	}

	var s domain.RefreshSession
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.IdentityID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt, &s.RevokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", shortHash(tokenHash))
	}
	return &s, nil
}

// Revoke marks one live session revoked. A session that is already revoked
// or gone yields domain.ErrNotFound, so only one of two concurrent
// rotations of the same token can succeed.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, now time.Time) error {
	query, args, err := postgres.Builder.Update(table).
		Set("revoked_at", now).
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build refresh_token revoke: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh_token %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// RevokeAllByIdentity revokes every live session of an identity and returns
// how many were revoked.
func (r *Repo) RevokeAllByIdentity(ctx context.Context, identityID uuid.UUID, now time.Time) (int, error) {
	query, args, err := postgres.Builder.Update(table).
		Set("revoked_at", now).
		Where(squirrel.Eq{"identity_id": identityID, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build refresh_token revoke all: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", identityID)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpired removes sessions that expired or were revoked before now.
// May delete many rows; does not need a transaction.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query, args, err := postgres.Builder.Delete(table).
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": now},
			squirrel.Lt{"revoked_at": now},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build refresh_token cleanup: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", "expired")
	}
	return int(tag.RowsAffected()), nil
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8] + "…"
	}
	return h
}
