// Package publication compiles approved submissions into editions and
// manages their publish lifecycle.
package publication

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

type editionRepo interface {
	Create(ctx context.Context, e *domain.Edition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Edition, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Edition, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Edition, error)
	Update(ctx context.Context, e *domain.Edition) (*domain.Edition, error)
	ReplaceItems(ctx context.Context, editionID uuid.UUID, items []domain.EditionItem) error
	Items(ctx context.Context, editionID uuid.UUID) ([]domain.EditionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f domain.EditionFilter) ([]domain.Edition, int, error)
}

type submissionRepo interface {
	CountByStatus(ctx context.Context, ids []uuid.UUID, status domain.SubmissionStatus) (int, error)
}

type auditLogger interface {
	Append(ctx context.Context, e domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// eventRecorder counts committed edition lifecycle events.
type eventRecorder interface {
	EditionEvent(action string)
}

// Service implements edition operations.
type Service struct {
	log         *slog.Logger
	editions    editionRepo
	submissions submissionRepo
	audit       auditLogger
	tx          txManager
	metrics     eventRecorder
	now         func() time.Time
}

// NewService creates a new publication service instance.
func NewService(
	logger *slog.Logger,
	editions editionRepo,
	submissions submissionRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:         logger.With("service", "publication"),
		editions:    editions,
		submissions: submissions,
		audit:       audit,
		tx:          tx,
		now:         time.Now,
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r eventRecorder) *Service {
	s.metrics = r
	return s
}

// requireApproved fails unless every id names an APPROVED submission.
func (s *Service) requireApproved(ctx context.Context, ids []uuid.UUID) error {
	n, err := s.submissions.CountByStatus(ctx, ids, domain.SubmissionStatusApproved)
	if err != nil {
		return fmt.Errorf("count approved submissions: %w", err)
	}
	if n != len(ids) {
		return domain.NewValidationError("submissionIds", "all submissions must exist and be APPROVED")
	}
	return nil
}

func (s *Service) record(ctx context.Context, action domain.AuditAction, e *domain.Edition, actor uuid.UUID, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["slug"] = e.Slug
	details["status"] = e.Status.String()
	return s.audit.Append(ctx, domain.AuditEntry{
		ActorID:    &actor,
		Action:     action,
		EntityType: domain.EntityTypeEdition,
		EntityID:   e.ID,
		Details:    details,
	})
}

func (s *Service) committed(ctx context.Context, action domain.AuditAction, e *domain.Edition, actor uuid.UUID) {
	if s.metrics != nil {
		s.metrics.EditionEvent(action.String())
	}
	s.log.InfoContext(ctx, "edition changed",
		slog.String("action", action.String()),
		slog.String("edition_id", e.ID.String()),
		slog.String("status", e.Status.String()),
		slog.String("actor_id", actor.String()))
}

// newSlug returns the slugified title plus a lowercase ULID suffix.
func newSlug(title string) string {
	return domain.Slugify(title) + "-" + strings.ToLower(ulid.Make().String())
}
