package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
)

// Error codes of the JSON error body.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorBody is the stable error shape of every non-2xx response except 429.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// FieldErrorBody is one entry of a validation error's details.
type FieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors maps domain errors to HTTP responses. It is the only place status
// codes are chosen for failures.
type Errors struct {
	log            *slog.Logger
	exposeInternal bool
	now            func() time.Time
}

// NewErrors creates the mapper. Internal error text is included in the
// response only when exposeInternal is set (non-production).
func NewErrors(logger *slog.Logger, exposeInternal bool) *Errors {
	return &Errors{
		log:            logger.With("component", "rest_errors"),
		exposeInternal: exposeInternal,
		now:            time.Now,
	}
}

// WriteError writes the response for err.
func (e *Errors) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		rerr *domain.RateLimitError
	)

	switch {
	case errors.As(err, &verr):
		details := make([]FieldErrorBody, len(verr.Errors))
		for i, fe := range verr.Errors {
			details[i] = FieldErrorBody{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Code: CodeValidation, Details: details})
	case errors.As(err, &rerr):
		middleware.WriteRateLimited(w, rerr, e.now())
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Code: CodeValidation})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, ErrorBody{Error: "authentication required", Code: CodeUnauthenticated})
	case errors.Is(err, domain.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, ErrorBody{Error: "invalid credentials", Code: CodeInvalidCredential})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorBody{Error: "forbidden", Code: CodeForbidden})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorBody{Error: "not found", Code: CodeNotFound})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorBody{Error: "conflict", Code: CodeConflict})
	default:
		e.log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		body := ErrorBody{Error: "internal server error", Code: CodeInternal}
		if e.exposeInternal {
			body.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
