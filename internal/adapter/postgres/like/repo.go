// Package like implements per-session likes on edition items.
package like

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

const table = "likes"

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new like repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Insert records a like. A like that already exists for the session is
// left as it is, so a concurrent toggle never aborts the transaction; an
// unknown item yields domain.ErrNotFound.
func (r *Repo) Insert(ctx context.Context, l *domain.Like) error {
	query, args, err := postgres.Builder.Insert(table).
		Columns("id", "edition_item_id", "session_id", "ip_address", "created_at").
		Values(l.ID, l.EditionItemID, l.SessionID, l.IPAddress, l.CreatedAt).
		Suffix("ON CONFLICT (edition_item_id, session_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build like insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "like", l.EditionItemID)
	}
	return nil
}

// ItemPublic reports whether the item belongs to a public edition. An
// unknown item yields domain.ErrNotFound.
func (r *Repo) ItemPublic(ctx context.Context, itemID uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder.Select("e.is_public").
		From("edition_items i").
		Join("editions e ON e.id = i.edition_id").
		Where(squirrel.Eq{"i.id": itemID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build edition item visibility: %w", err)
	}

	var public bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&public); err != nil {
		return false, postgres.MapError(err, "edition_item", itemID)
	}
	return public, nil
}

// Delete removes the session's like on an item and reports whether one existed.
func (r *Repo) Delete(ctx context.Context, itemID uuid.UUID, sessionID string) (bool, error) {
	query, args, err := postgres.Builder.Delete(table).
		Where(squirrel.Eq{"edition_item_id": itemID, "session_id": sessionID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build like delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "like", itemID)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of likes on an item.
func (r *Repo) Count(ctx context.Context, itemID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder.Select("count(*)").From(table).
		Where(squirrel.Eq{"edition_item_id": itemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build like count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "like", itemID)
	}
	return n, nil
}
