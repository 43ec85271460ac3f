// Package submission accepts community contributions into the moderation
// queue.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

type submissionRepo interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
}

type auditLogger interface {
	Append(ctx context.Context, e domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements submission intake.
type Service struct {
	log         *slog.Logger
	submissions submissionRepo
	audit       auditLogger
	tx          txManager
	now         func() time.Time
}

// NewService creates a new submission service instance.
func NewService(logger *slog.Logger, submissions submissionRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		log:         logger.With("service", "submission"),
		submissions: submissions,
		audit:       audit,
		tx:          tx,
		now:         time.Now,
	}
}

// Create stores a new PENDING submission. IdentityID is nil for anonymous
// contributors.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Submission, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Submission
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.submissions.Create(txCtx, &domain.Submission{
			ID:          uuid.New(),
			Category:    input.Category,
			ContentType: input.ContentType,
			Title:       input.Title,
			Body:        input.Body,
			MediaURL:    input.MediaURL,
			Status:      domain.SubmissionStatusPending,
			SubmittedAt: s.now(),
			IdentityID:  input.IdentityID,
			SessionTag:  input.SessionTag,
		})
		if err != nil {
			return fmt.Errorf("create submission: %w", err)
		}

		return s.audit.Append(txCtx, domain.AuditEntry{
			ActorID:    input.IdentityID,
			Action:     domain.AuditActionCreateSubmission,
			EntityType: domain.EntityTypeSubmission,
			EntityID:   created.ID,
			Details: map[string]any{
				"category":    created.Category.String(),
				"contentType": created.ContentType.String(),
				"anonymous":   input.IdentityID == nil,
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("submission.Create: %w", err)
	}

	s.log.InfoContext(ctx, "submission received",
		slog.String("submission_id", created.ID.String()),
		slog.String("category", created.Category.String()),
		slog.Bool("anonymous", input.IdentityID == nil))

	return created, nil
}
