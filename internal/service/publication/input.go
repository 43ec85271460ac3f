package publication

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxItems             = 200

	DefaultLimit = 20
	MaxLimit     = 100
)

// CreateInput holds parameters for compiling a new edition.
type CreateInput struct {
	Title         string
	Description   *string
	SubmissionIDs []uuid.UUID
	IsPublic      bool
	ActorID       uuid.UUID
}

func (i *CreateInput) normalize() {
	i.Title = domain.NormalizeText(i.Title)
	i.Description = normalizeDescription(i.Description)
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = checkTitle(errs, i.Title)
	errs = checkDescription(errs, i.Description)
	errs = checkSubmissionIDs(errs, i.SubmissionIDs)
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput patches an edition. Nil fields are left unchanged; a non-nil
// SubmissionIDs replaces the item list in the given order.
type UpdateInput struct {
	ID            uuid.UUID
	Title         *string
	Description   *string
	SubmissionIDs []uuid.UUID
	ActorID       uuid.UUID
}

func (i *UpdateInput) normalize() {
	if i.Title != nil {
		title := domain.NormalizeText(*i.Title)
		i.Title = &title
	}
	i.Description = normalizeDescription(i.Description)
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor", Message: "required"})
	}
	if i.Title != nil {
		errs = checkTitle(errs, *i.Title)
	}
	errs = checkDescription(errs, i.Description)
	if i.SubmissionIDs != nil {
		errs = checkSubmissionIDs(errs, i.SubmissionIDs)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput filters edition listings. Without All only public editions are
// returned.
type ListInput struct {
	All    bool
	Status *domain.EditionStatus
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

func (i ListInput) filter() domain.EditionFilter {
	limit := i.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return domain.EditionFilter{
		Status:     i.Status,
		PublicOnly: !i.All,
		Limit:      limit,
		Offset:     i.Offset,
	}
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	v := domain.NormalizeText(*d)
	return &v
}

func checkTitle(errs []domain.FieldError, title string) []domain.FieldError {
	if title == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	return errs
}

func checkDescription(errs []domain.FieldError, d *string) []domain.FieldError {
	if d != nil && utf8.RuneCountInString(*d) > maxDescriptionLength {
		return append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	return errs
}

func checkSubmissionIDs(errs []domain.FieldError, ids []uuid.UUID) []domain.FieldError {
	if len(ids) == 0 {
		return append(errs, domain.FieldError{Field: "submissionIds", Message: "at least one submission is required"})
	}
	if len(ids) > maxItems {
		return append(errs, domain.FieldError{Field: "submissionIds", Message: "too many submissions"})
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return append(errs, domain.FieldError{Field: "submissionIds", Message: "contains an empty id"})
		}
		if _, dup := seen[id]; dup {
			return append(errs, domain.FieldError{Field: "submissionIds", Message: "contains duplicates"})
		}
		seen[id] = struct{}{}
	}
	return errs
}
