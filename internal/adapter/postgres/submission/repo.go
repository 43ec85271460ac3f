// Package submission implements the Submission repository using PostgreSQL.
package submission

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

const table = "submissions"

var (
	columns = []string{
		"id", "category", "content_type", "title", "body", "media_url", "status",
		"submitted_at", "reviewed_at", "reviewed_by", "review_notes", "identity_id", "session_tag",
	}
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new submission repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a submission and returns the stored row.
func (r *Repo) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	query, args, err := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(
			s.ID, string(s.Category), string(s.ContentType), s.Title, s.Body, s.MediaURL, string(s.Status),
			s.SubmittedAt, s.ReviewedAt, s.ReviewedBy, s.ReviewNotes, s.IdentityID, s.SessionTag,
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submission insert: %w", err)
	}

	created, err := scanSubmission(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "submission", s.ID)
	}
	return created, nil
}

// GetByID returns a submission by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate returns a submission and locks its row until the surrounding
// transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock string) (*domain.Submission, error) {
	b := postgres.Builder.Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	if lock != "" {
		b = b.Suffix(lock)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submission select: %w", err)
	}

	s, err := scanSubmission(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// Review records a moderation decision on a submission.
func (r *Repo) Review(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewer uuid.UUID, notes *string, at time.Time) (*domain.Submission, error) {
	query, args, err := postgres.Builder.Update(table).
		Set("status", string(status)).
		Set("reviewed_at", at).
		Set("reviewed_by", reviewer).
		Set("review_notes", notes).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submission review: %w", err)
	}

	s, err := scanSubmission(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// List returns one page of submissions, oldest first so the queue is worked
// in arrival order, plus the total matching the filter.
func (r *Repo) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	where := squirrel.And{}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*f.Status)})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder.Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build submission count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "submission", "count")
	}

	query, args, err := postgres.Builder.Select(columns...).From(table).Where(where).
		OrderBy("submitted_at ASC", "id ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build submission list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "submission", "list")
	}
	defer rows.Close()

	out := make([]domain.Submission, 0, f.Limit)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "submission", "list")
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "submission", "list")
	}
	return out, total, nil
}

// CountByStatus returns how many of ids exist with the given status.
func (r *Repo) CountByStatus(ctx context.Context, ids []uuid.UUID, status domain.SubmissionStatus) (int, error) {
	query, args, err := postgres.Builder.Select("count(*)").From(table).
		Where(squirrel.Eq{"id": ids, "status": string(status)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build submission count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "submission", "count")
	}
	return n, nil
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		s                             domain.Submission
		category, contentType, status string
	)
	err := row.Scan(
		&s.ID, &category, &contentType, &s.Title, &s.Body, &s.MediaURL, &status,
		&s.SubmittedAt, &s.ReviewedAt, &s.ReviewedBy, &s.ReviewNotes, &s.IdentityID, &s.SessionTag,
	)
	if err != nil {
		return nil, err
	}
	s.Category = domain.SubmissionCategory(category)
	s.ContentType = domain.ContentType(contentType)
	s.Status = domain.SubmissionStatus(status)
	return &s, nil
}
