package publication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Get returns any edition by ID with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	e, err := s.editions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("publication.Get: %w", err)
	}
	return e, nil
}

// GetBySlug returns a published edition. Drafts and archived editions are
// reported as not found.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Edition, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	e, err := s.editions.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("publication.GetBySlug: %w", err)
	}
	if e.Status != domain.EditionStatusPublished || !e.IsPublic {
		return nil, fmt.Errorf("publication.GetBySlug: edition %s: %w", slug, domain.ErrNotFound)
	}
	return e, nil
}

// List returns one page of editions without items and the total count.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Edition, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	editions, total, err := s.editions.List(ctx, input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("publication.List: %w", err)
	}
	return editions, total, nil
}
