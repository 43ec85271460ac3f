// Package edition implements the Edition repository using PostgreSQL.
// Edition items are owned by their edition and written through it.
package edition

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

const (
	table      = "editions"
	itemsTable = "edition_items"
)

var (
	columns = []string{
		"id", "title", "description", "status", "is_public", "slug",
		"published_at", "published_by", "created_by", "created_at", "updated_at",
	}
	itemColumns = []string{"id", "edition_id", "submission_id", "display_order"}
	returning   = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides edition persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new edition repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts the edition row and its items. Call inside a transaction so
// a failing item insert leaves nothing behind.
func (r *Repo) Create(ctx context.Context, e *domain.Edition) error {
	query, args, err := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(
			e.ID, e.Title, e.Description, string(e.Status), e.IsPublic, e.Slug,
			e.PublishedAt, e.PublishedBy, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build edition insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "edition", e.ID)
	}
	return r.insertItems(ctx, e.ID, e.Items)
}

// GetByID returns an edition with its items in display order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	e, err := r.getOne(ctx, squirrel.Eq{"id": id}, "", id)
	if err != nil {
		return nil, err
	}
	if e.Items, err = r.Items(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// GetBySlug returns an edition with its items in display order.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Edition, error) {
	e, err := r.getOne(ctx, squirrel.Eq{"slug": slug}, "", slug)
	if err != nil {
		return nil, err
	}
	if e.Items, err = r.Items(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// GetForUpdate locks the edition row for the rest of the transaction. Items
// are not loaded.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "FOR UPDATE", id)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, lock string, ref any) (*domain.Edition, error) {
	b := postgres.Builder.Select(columns...).From(table).Where(where)
	if lock != "" {
		b = b.Suffix(lock)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edition select: %w", err)
	}

	e, err := scanEdition(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "edition", ref)
	}
	return e, nil
}

// Update writes the mutable edition fields and returns the stored row
// without items.
func (r *Repo) Update(ctx context.Context, e *domain.Edition) (*domain.Edition, error) {
	query, args, err := postgres.Builder.Update(table).
		Set("title", e.Title).
		Set("description", e.Description).
		Set("status", string(e.Status)).
		Set("is_public", e.IsPublic).
		Set("published_at", e.PublishedAt).
		Set("published_by", e.PublishedBy).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edition update: %w", err)
	}

	updated, err := scanEdition(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "edition", e.ID)
	}
	return updated, nil
}

// ReplaceItems makes items the edition's item list. Rows for submissions
// that stay keep their ID, and so their likes, and only move to the new
// display_order; rows for dropped submissions are deleted. The display_order
// uniqueness is deferred, so reordering is safe mid-transaction.
func (r *Repo) ReplaceItems(ctx context.Context, editionID uuid.UUID, items []domain.EditionItem) error {
	keep := make([]uuid.UUID, len(items))
	for i, it := range items {
		keep[i] = it.SubmissionID
	}

	query, args, err := postgres.Builder.Delete(itemsTable).
		Where(squirrel.Eq{"edition_id": editionID}).
		Where(squirrel.NotEq{"submission_id": keep}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build edition_items delete: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "edition_items", editionID)
	}
	return r.upsertItems(ctx, editionID, items)
}

func (r *Repo) insertItems(ctx context.Context, editionID uuid.UUID, items []domain.EditionItem) error {
	return r.writeItems(ctx, editionID, items, "")
}

func (r *Repo) upsertItems(ctx context.Context, editionID uuid.UUID, items []domain.EditionItem) error {
	return r.writeItems(ctx, editionID, items,
		"ON CONFLICT (edition_id, submission_id) DO UPDATE SET display_order = EXCLUDED.display_order")
}

func (r *Repo) writeItems(ctx context.Context, editionID uuid.UUID, items []domain.EditionItem, onConflict string) error {
	if len(items) == 0 {
		return nil
	}

	b := postgres.Builder.Insert(itemsTable).Columns(itemColumns...)
	for _, it := range items {
		b = b.Values(it.ID, editionID, it.SubmissionID, it.DisplayOrder)
	}
	if onConflict != "" {
		b = b.Suffix(onConflict)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build edition_items insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "edition_items", editionID)
	}
	return nil
}

// Items returns an edition's items in display order with their like counts.
func (r *Repo) Items(ctx context.Context, editionID uuid.UUID) ([]domain.EditionItem, error) {
	query, args, err := postgres.Builder.
		Select(
			"i.id", "i.edition_id", "i.submission_id", "i.display_order",
			"(SELECT count(*) FROM likes l WHERE l.edition_item_id = i.id) AS like_count",
		).
		From(itemsTable + " i").
		Where(squirrel.Eq{"i.edition_id": editionID}).
		OrderBy("i.display_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build edition_items select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "edition_items", editionID)
	}
	defer rows.Close()

	var items []domain.EditionItem
	for rows.Next() {
		var it domain.EditionItem
		if err := rows.Scan(&it.ID, &it.EditionID, &it.SubmissionID, &it.DisplayOrder, &it.LikeCount); err != nil {
			return nil, postgres.MapError(err, "edition_items", editionID)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "edition_items", editionID)
	}
	return items, nil
}

// Delete removes an edition; its items and their likes cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build edition delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "edition", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "edition", id)
	}
	return nil
}

// List returns one page of editions (without items), newest publication
// first, plus the total matching the filter.
func (r *Repo) List(ctx context.Context, f domain.EditionFilter) ([]domain.Edition, int, error) {
	where := squirrel.And{}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*f.Status)})
	}
	if f.PublicOnly {
		where = append(where, squirrel.Eq{"is_public": true})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder.Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build edition count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "edition", "count")
	}

	query, args, err := postgres.Builder.Select(columns...).From(table).Where(where).
		OrderBy("published_at DESC NULLS LAST", "created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build edition list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "edition", "list")
	}
	defer rows.Close()

	out := make([]domain.Edition, 0, f.Limit)
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "edition", "list")
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "edition", "list")
	}
	return out, total, nil
}

func scanEdition(row pgx.Row) (*domain.Edition, error) {
	var (
		e      domain.Edition
		status string
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &status, &e.IsPublic, &e.Slug,
		&e.PublishedAt, &e.PublishedBy, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EditionStatus(status)
	return &e, nil
}
