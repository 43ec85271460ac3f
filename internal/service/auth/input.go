package auth

import (
	"net/mail"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

const (
	maxNameLength     = 100
	maxEmailLength    = 254
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// RegisterInput holds parameters for registration. Email and password are
// optional, but a password needs an email to log in with.
type RegisterInput struct {
	Name     string
	Email    *string
	Password *string
}

func (i *RegisterInput) normalize() {
	i.Name = domain.NormalizeText(i.Name)
	if i.Email != nil {
		email := domain.NormalizeEmail(*i.Email)
		i.Email = &email
		if email == "" {
			i.Email = nil
		}
	}
	if i.Password != nil && *i.Password == "" {
		i.Password = nil
	}
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(i.Name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Email != nil {
		if msg := checkEmail(*i.Email); msg != "" {
			errs = append(errs, domain.FieldError{Field: "email", Message: msg})
		}
	}

	if i.Password != nil {
		if i.Email == nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "required when password is set"})
		}
		if msg := checkPassword(*i.Password); msg != "" {
			errs = append(errs, domain.FieldError{Field: "password", Message: msg})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if len(i.Email) > maxEmailLength {
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// PromoteInput changes the role of the identity registered under Email.
// ActorID is nil when the change comes from the command line.
type PromoteInput struct {
	Email   string
	Role    domain.Role
	ActorID *uuid.UUID
}

// Validate validates the promote input.
func (i PromoteInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be ADMIN, MODERATOR or CONTRIBUTOR"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func checkEmail(email string) string {
	if len(email) > maxEmailLength {
		return "too long"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "invalid email"
	}
	return ""
}

func checkPassword(password string) string {
	switch {
	case len(password) < minPasswordLength:
		return "too short"
	case len(password) > maxPasswordLength:
		return "too long"
	}
	return ""
}
