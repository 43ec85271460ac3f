package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

// QueryInput holds the admin audit view filters. Zero values mean "any".
type QueryInput struct {
	ActorID    *uuid.UUID
	EntityType *domain.EntityType
	EntityID   *uuid.UUID
	Action     *domain.AuditAction
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Validate validates the query input.
func (i QueryInput) Validate() error {
	var errs []domain.FieldError

	if i.EntityType != nil && !i.EntityType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "entityType", Message: "unknown entity type"})
	}
	if i.Action != nil && !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action"})
	}
	if i.From != nil && i.To != nil && i.From.After(*i.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must not be after to"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i QueryInput) filter() domain.AuditFilter {
	limit := i.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return domain.AuditFilter{
		ActorID:    i.ActorID,
		EntityType: i.EntityType,
		EntityID:   i.EntityID,
		Action:     i.Action,
		From:       i.From,
		To:         i.To,
		Limit:      limit,
		Offset:     i.Offset,
	}
}
