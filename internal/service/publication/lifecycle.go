package publication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Publish makes a DRAFT edition public.
func (s *Service) Publish(ctx context.Context, id, actor uuid.UUID) (*domain.Edition, error) {
	e, err := s.transition(ctx, id, actor, domain.AuditActionPublishEdition, func(e *domain.Edition) error {
		switch e.Status {
		case domain.EditionStatusDraft:
		case domain.EditionStatusPublished, domain.EditionStatusArchived:
			return domain.NewValidationError("status", "only DRAFT editions can be published")
		default:
			return fmt.Errorf("unexpected edition status %q", e.Status)
		}

		now := s.now()
		e.Status = domain.EditionStatusPublished
		e.IsPublic = true
		e.PublishedAt = &now
		e.PublishedBy = &actor
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publication.Publish: %w", err)
	}
	return e, nil
}

// Unpublish returns a PUBLISHED edition to DRAFT. PublishedAt and
// PublishedBy keep their last values.
func (s *Service) Unpublish(ctx context.Context, id, actor uuid.UUID) (*domain.Edition, error) {
	e, err := s.transition(ctx, id, actor, domain.AuditActionUnpublishEdition, func(e *domain.Edition) error {
		switch e.Status {
		case domain.EditionStatusPublished:
		case domain.EditionStatusDraft, domain.EditionStatusArchived:
			return domain.NewValidationError("status", "only PUBLISHED editions can be unpublished")
		default:
			return fmt.Errorf("unexpected edition status %q", e.Status)
		}

		e.Status = domain.EditionStatusDraft
		e.IsPublic = false
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publication.Unpublish: %w", err)
	}
	return e, nil
}

// transition locks the edition, applies change and writes the row and its
// audit entry in one transaction.
func (s *Service) transition(
	ctx context.Context,
	id, actor uuid.UUID,
	action domain.AuditAction,
	change func(e *domain.Edition) error,
) (*domain.Edition, error) {
	var updated *domain.Edition
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.editions.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		from := current.Status

		if err := change(current); err != nil {
			return err
		}
		current.UpdatedAt = s.now()

		updated, err = s.editions.Update(txCtx, current)
		if err != nil {
			return fmt.Errorf("update edition: %w", err)
		}
		if updated.Items, err = s.editions.Items(txCtx, updated.ID); err != nil {
			return fmt.Errorf("load items: %w", err)
		}

		return s.record(txCtx, action, updated, actor, map[string]any{
			"oldStatus": from.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, action, updated, actor)
	return updated, nil
}
