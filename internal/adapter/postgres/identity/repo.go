// Package identity implements the Identity repository using PostgreSQL.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

const table = "identities"

var (
	columns   = []string{"id", "email", "display_name", "password_hash", "role", "created_at", "updated_at"}
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides identity persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new identity repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// GetByID returns an identity by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query, args, err := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build identity select: %w", err)
	}

	ident, err := scanIdentity(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "identity", id)
	}
	return ident, nil
}

// GetByEmail returns an identity by its normalized email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query, args, err := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build identity select: %w", err)
	}

	ident, err := scanIdentity(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "identity", email)
	}
	return ident, nil
}

// Create inserts a new identity and returns the persisted row.
// A taken email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, ident *domain.Identity) (*domain.Identity, error) {
	query, args, err := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(ident.ID, ident.Email, ident.DisplayName, ident.PasswordHash, string(ident.Role), ident.CreatedAt, ident.UpdatedAt).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build identity insert: %w", err)
	}

	created, err := scanIdentity(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "identity", ident.ID)
	}
	return created, nil
}

// UpdateRole changes an identity's role and returns the updated row.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role, now time.Time) (*domain.Identity, error) {
	query, args, err := postgres.Builder.Update(table).
		Set("role", string(role)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build identity update: %w", err)
	}

	updated, err := scanIdentity(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "identity", id)
	}
	return updated, nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var (
		ident domain.Identity
		role  string
	)
	if err := row.Scan(&ident.ID, &ident.Email, &ident.DisplayName, &ident.PasswordHash, &role, &ident.CreatedAt, &ident.UpdatedAt); err != nil {
		return nil, err
	}
	ident.Role = domain.Role(role)
	return &ident, nil
}
