package moderation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

const (
	maxNotesLength = 2000

	DefaultLimit = 20
	MaxLimit     = 100
)

// SetStatusInput holds parameters for a review decision.
type SetStatusInput struct {
	SubmissionID uuid.UUID
	Status       domain.SubmissionStatus
	ActorID      uuid.UUID
	Notes        *string
}

func (i *SetStatusInput) normalize() {
	if i.Notes != nil {
		notes := strings.TrimSpace(*i.Notes)
		i.Notes = &notes
		if notes == "" {
			i.Notes = nil
		}
	}
}

// Validate checks the input shape. Whether Status is a reachable review
// target is decided after the submission is loaded.
func (i SetStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Notes != nil && utf8.RuneCountInString(*i.Notes) > maxNotesLength {
		errs = append(errs, domain.FieldError{Field: "reviewNotes", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput filters the moderation queue.
type ListInput struct {
	Status *domain.SubmissionStatus
	Limit  int
	Offset int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
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

func (i ListInput) filter() domain.SubmissionFilter {
	limit := i.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return domain.SubmissionFilter{Status: i.Status, Limit: limit, Offset: i.Offset}
}
