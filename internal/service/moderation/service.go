// Package moderation moves submissions through review.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

type submissionRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	Review(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewer uuid.UUID, notes *string, at time.Time) (*domain.Submission, error)
	List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
}

type auditLogger interface {
	Append(ctx context.Context, e domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// transitionRecorder counts committed review decisions.
type transitionRecorder interface {
	ModerationTransition(from, to string)
}

// Service implements moderation operations.
type Service struct {
	log         *slog.Logger
	submissions submissionRepo
	audit       auditLogger
	tx          txManager
	metrics     transitionRecorder
	now         func() time.Time
}

// NewService creates a new moderation service instance.
func NewService(logger *slog.Logger, submissions submissionRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		log:         logger.With("service", "moderation"),
		submissions: submissions,
		audit:       audit,
		tx:          tx,
		now:         time.Now,
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r transitionRecorder) *Service {
	s.metrics = r
	return s
}

// SetStatus approves or rejects a submission and records the decision in
// the audit log within the same transaction.
//
// The current status is not restricted: re-applying a decision leaves the
// row as it was but still writes a new review stamp and audit entry.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (*domain.Submission, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		updated   *domain.Submission
		oldStatus domain.SubmissionStatus
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.submissions.GetForUpdate(txCtx, input.SubmissionID)
		if err != nil {
			return err
		}
		oldStatus = current.Status

		action, ok := input.Status.ReviewAction()
		if !ok {
			return domain.NewValidationError("status", "must be APPROVED or REJECTED")
		}

		updated, err = s.submissions.Review(txCtx, current.ID, input.Status, input.ActorID, input.Notes, s.now())
		if err != nil {
			return fmt.Errorf("review: %w", err)
		}

		details := map[string]any{
			"oldStatus": oldStatus.String(),
			"newStatus": updated.Status.String(),
		}
		if input.Notes != nil {
			details["notes"] = *input.Notes
		}
		return s.audit.Append(txCtx, domain.AuditEntry{
			ActorID:    &input.ActorID,
			Action:     action,
			EntityType: domain.EntityTypeSubmission,
			EntityID:   updated.ID,
			Details:    details,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("moderation.SetStatus: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ModerationTransition(oldStatus.String(), updated.Status.String())
	}
	s.log.InfoContext(ctx, "submission reviewed",
		slog.String("submission_id", updated.ID.String()),
		slog.String("old_status", oldStatus.String()),
		slog.String("new_status", updated.Status.String()),
		slog.String("actor_id", input.ActorID.String()))

	return updated, nil
}

// List returns the moderation queue, oldest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Submission, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	items, total, err := s.submissions.List(ctx, input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("moderation.List: %w", err)
	}
	return items, total, nil
}
