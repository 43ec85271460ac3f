// Package audit records and queries the append-only audit log.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/pkg/ctxutil"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditEntry) error
	AppendInSavepoint(ctx context.Context, e domain.AuditEntry) error
	Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, int, error)
}

// Service appends audit entries inside the caller's transaction and serves
// the admin audit view.
type Service struct {
	log        *slog.Logger
	repo       auditRepo
	bestEffort bool
	now        func() time.Time
}

// NewService creates a new audit service. Unknown policies behave as strict.
func NewService(logger *slog.Logger, repo auditRepo, cfg config.AuditConfig) *Service {
	return &Service{
		log:        logger.With("service", "audit"),
		repo:       repo,
		bestEffort: cfg.FailurePolicy == config.AuditPolicyBestEffort,
		now:        time.Now,
	}
}

// Append records e. ID, CreatedAt, RequestID and IPAddress are filled from
// ctx when unset.
//
// Under the strict policy a write failure is returned so the surrounding
// transaction rolls back. Under best_effort it is logged and swallowed; the
// insert then runs in a savepoint so the outer transaction can still commit.
func (s *Service) Append(ctx context.Context, e domain.AuditEntry) error {
	if !e.Action.IsValid() {
		return fmt.Errorf("audit.Append: unknown action %q", e.Action)
	}
	if !e.EntityType.IsValid() {
		return fmt.Errorf("audit.Append: unknown entity type %q", e.EntityType)
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.RequestID == "" {
		e.RequestID = ctxutil.RequestIDFromCtx(ctx)
	}
	if e.IPAddress == "" {
		e.IPAddress = ctxutil.ClientIPFromCtx(ctx)
	}

	if !s.bestEffort {
		if err := s.repo.Append(ctx, e); err != nil {
			return fmt.Errorf("audit.Append: %w", err)
		}
		return nil
	}

	if err := s.repo.AppendInSavepoint(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "audit write dropped",
			slog.String("action", e.Action.String()),
			slog.String("entity_type", e.EntityType.String()),
			slog.String("entity_id", e.EntityID.String()),
			slog.String("error", err.Error()))
	}
	return nil
}

// Query returns one page of entries newest first and the total match count.
func (s *Service) Query(ctx context.Context, input QueryInput) ([]domain.AuditEntry, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	entries, total, err := s.repo.Query(ctx, input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("audit.Query: %w", err)
	}
	return entries, total, nil
}
