package submission

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

const (
	maxTitleLength      = 200
	maxBodyLength       = 20000
	maxMediaURLLength   = 2048
	maxSessionTagLength = 128
)

// CreateInput holds a contribution. Text submissions carry Body; every
// other content type carries MediaURL and may add Body as a caption.
type CreateInput struct {
	Category    domain.SubmissionCategory
	ContentType domain.ContentType
	Title       string
	Body        *string
	MediaURL    *string
	IdentityID  *uuid.UUID
	SessionTag  *string
}

func (i *CreateInput) normalize() {
	i.Title = domain.NormalizeText(i.Title)
	i.Body = trimmedOrNil(i.Body)
	i.MediaURL = trimmedOrNil(i.MediaURL)
	i.SessionTag = trimmedOrNil(i.SessionTag)
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Body != nil && utf8.RuneCountInString(*i.Body) > maxBodyLength {
		errs = append(errs, domain.FieldError{Field: "body", Message: "too long"})
	}

	switch {
	case !i.ContentType.IsValid():
		errs = append(errs, domain.FieldError{Field: "contentType", Message: "unknown content type"})
	case i.ContentType.RequiresMedia():
		if i.MediaURL == nil {
			errs = append(errs, domain.FieldError{Field: "mediaUrl", Message: "required for this content type"})
		} else if !validMediaURL(*i.MediaURL) {
			errs = append(errs, domain.FieldError{Field: "mediaUrl", Message: "must be an http(s) URL"})
		}
	default:
		if i.Body == nil {
			errs = append(errs, domain.FieldError{Field: "body", Message: "required for text submissions"})
		}
		if i.MediaURL != nil {
			errs = append(errs, domain.FieldError{Field: "mediaUrl", Message: "not allowed for text submissions"})
		}
	}

	if i.SessionTag != nil && len(*i.SessionTag) > maxSessionTagLength {
		errs = append(errs, domain.FieldError{Field: "sessionTag", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validMediaURL(raw string) bool {
	if len(raw) > maxMediaURLLength {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
