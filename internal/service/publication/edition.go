package publication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Create compiles APPROVED submissions into a new edition. It is
// PUBLISHED immediately when input.IsPublic is set and DRAFT otherwise.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Edition, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	e := &domain.Edition{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: nonEmpty(input.Description),
		Status:      domain.EditionStatusDraft,
		Slug:        newSlug(input.Title),
		CreatedBy:   &input.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsPublic {
		e.Status = domain.EditionStatusPublished
		e.IsPublic = true
		e.PublishedAt = &now
		e.PublishedBy = &input.ActorID
	}
	e.Items = domain.OrderedItems(e.ID, input.SubmissionIDs)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireApproved(txCtx, input.SubmissionIDs); err != nil {
			return err
		}
		if err := s.editions.Create(txCtx, e); err != nil {
			return fmt.Errorf("create edition: %w", err)
		}
		return s.record(txCtx, domain.AuditActionCreateEdition, e, input.ActorID, map[string]any{
			"title":     e.Title,
			"itemCount": len(e.Items),
			"isPublic":  e.IsPublic,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("publication.Create: %w", err)
	}

	s.committed(ctx, domain.AuditActionCreateEdition, e, input.ActorID)
	return e, nil
}

// Update patches title, description and items. Items are renumbered
// 0..n-1 in the order given. Whether the edition may be edited at all is
// the caller's decision.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Edition, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Edition
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.editions.GetForUpdate(txCtx, input.ID)
		if err != nil {
			return err
		}

		var changed []string
		if input.Title != nil && *input.Title != current.Title {
			current.Title = *input.Title
			changed = append(changed, "title")
		}
		if input.Description != nil {
			current.Description = nonEmpty(input.Description)
			changed = append(changed, "description")
		}
		if input.SubmissionIDs != nil {
			if err := s.requireApproved(txCtx, input.SubmissionIDs); err != nil {
				return err
			}
			if err := s.editions.ReplaceItems(txCtx, current.ID, domain.OrderedItems(current.ID, input.SubmissionIDs)); err != nil {
				return fmt.Errorf("replace items: %w", err)
			}
			changed = append(changed, "items")
		}
		current.UpdatedAt = s.now()

		updated, err = s.editions.Update(txCtx, current)
		if err != nil {
			return fmt.Errorf("update edition: %w", err)
		}
		if updated.Items, err = s.editions.Items(txCtx, updated.ID); err != nil {
			return fmt.Errorf("load items: %w", err)
		}

		return s.record(txCtx, domain.AuditActionUpdateEdition, updated, input.ActorID, map[string]any{
			"fields":    changed,
			"itemCount": len(updated.Items),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("publication.Update: %w", err)
	}

	s.committed(ctx, domain.AuditActionUpdateEdition, updated, input.ActorID)
	return updated, nil
}

// Delete removes a DRAFT edition together with its items.
func (s *Service) Delete(ctx context.Context, id, actor uuid.UUID) error {
	var deleted *domain.Edition
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.editions.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		switch current.Status {
		case domain.EditionStatusDraft:
		case domain.EditionStatusPublished, domain.EditionStatusArchived:
			return domain.NewValidationError("status", "only DRAFT editions can be deleted")
		default:
			return fmt.Errorf("unexpected edition status %q", current.Status)
		}

		if err := s.editions.Delete(txCtx, current.ID); err != nil {
			return fmt.Errorf("delete edition: %w", err)
		}
		deleted = current
		return s.record(txCtx, domain.AuditActionDeleteEdition, current, actor, map[string]any{
			"title": current.Title,
		})
	})
	if err != nil {
		return fmt.Errorf("publication.Delete: %w", err)
	}

	s.committed(ctx, domain.AuditActionDeleteEdition, deleted, actor)
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
