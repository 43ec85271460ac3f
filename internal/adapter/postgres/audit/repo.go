// Package audit implements the append-only audit log using PostgreSQL.
// There are deliberately no update or delete methods.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

const table = "audit_entries"

var columns = []string{
	"id", "actor_id", "action", "entity_type", "entity_id", "details", "request_id", "ip_address", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new audit repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Append inserts an entry using the transaction in ctx when there is one, so
// the entry commits or rolls back with the change it describes.
func (r *Repo) Append(ctx context.Context, e domain.AuditEntry) error {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("audit_entry marshal details: %w", err)
	}

	query, args, err := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(e.ID, e.ActorID, string(e.Action), string(e.EntityType), e.EntityID, detailsJSON, e.RequestID, e.IPAddress, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit_entry insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "audit_entry", e.ID)
	}
	return nil
}

// AppendInSavepoint is Append wrapped in a savepoint when ctx carries a
// transaction. A failed insert then rolls back only the savepoint and the
// outer transaction stays usable.
func (r *Repo) AppendInSavepoint(ctx context.Context, e domain.AuditEntry) error {
	tx, ok := postgres.QuerierFromCtx(ctx, r.db).(pgx.Tx)
	if !ok {
		return r.Append(ctx, e)
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("audit_entry savepoint: %w", err)
	}
	if err := r.Append(postgres.WithQuerier(ctx, sp), e); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("audit_entry release savepoint: %w", err)
	}
	return nil
}

// Query returns one page of entries matching f, newest first, and the total
// number of matches.
func (r *Repo) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, int, error) {
	where := filterClause(f)
	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder.Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build audit count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "audit_entry", "count")
	}

	query, args, err := postgres.Builder.Select(columns...).From(table).Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "audit_entry", "query")
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0, f.Limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "audit_entry", "query")
	}
	return entries, total, nil
}

func filterClause(f domain.AuditFilter) squirrel.And {
	where := squirrel.And{}
	if f.ActorID != nil {
		where = append(where, squirrel.Eq{"actor_id": *f.ActorID})
	}
	if f.EntityType != nil {
		where = append(where, squirrel.Eq{"entity_type": string(*f.EntityType)})
	}
	if f.EntityID != nil {
		where = append(where, squirrel.Eq{"entity_id": *f.EntityID})
	}
	if f.Action != nil {
		where = append(where, squirrel.Eq{"action": string(*f.Action)})
	}
	if f.From != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		where = append(where, squirrel.Lt{"created_at": *f.To})
	}
	return where
}

func scanEntry(row pgx.Row) (domain.AuditEntry, error) {
	var (
		e                  domain.AuditEntry
		action, entityType string
		details            []byte
	)
	err := row.Scan(&e.ID, &e.ActorID, &action, &entityType, &e.EntityID, &details, &e.RequestID, &e.IPAddress, &e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "audit_entry", "scan")
	}
	e.Action = domain.AuditAction(action)
	e.EntityType = domain.EntityType(entityType)

	if len(details) > 0 {
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit_entry %s unmarshal details: %w", e.ID, err)
		}
	}
	return e, nil
}
