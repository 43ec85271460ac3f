package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/audit"
)

//go:generate moq -out audit_service_mock_test.go -pkg rest . auditService

type auditService interface {
	Query(ctx context.Context, input audit.QueryInput) ([]domain.AuditEntry, int, error)
}

// AdminHandler serves admin-only endpoints.
type AdminHandler struct {
	audit auditService
	errs  *Errors
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(audit auditService, errs *Errors) *AdminHandler {
	return &AdminHandler{audit: audit, errs: errs}
}

// Audit lists audit entries, newest first.
// GET /admin/audit?actorId=&entityType=&entityId=&action=&from=&to=&limit=&offset=
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	input, err := parseAuditQuery(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	entries, total, err := h.audit.Query(r.Context(), input)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPage(entries, total, input.Limit, input.Offset, toAuditEntryResponse))
}

func parseAuditQuery(r *http.Request) (audit.QueryInput, error) {
	q := r.URL.Query()
	var errs []domain.FieldError

	limit, offset, err := pageParams(r)
	if err != nil {
		return audit.QueryInput{}, err
	}
	input := audit.QueryInput{Limit: limit, Offset: offset}

	parseID := func(field string) *uuid.UUID {
		v := q.Get(field)
		if v == "" {
			return nil
		}
		id, err := uuid.Parse(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: field, Message: "must be a UUID"})
			return nil
		}
		return &id
	}
	parseTime := func(field string) *time.Time {
		v := q.Get(field)
		if v == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: field, Message: "must be an RFC 3339 timestamp"})
			return nil
		}
		return &t
	}

	input.ActorID = parseID("actorId")
	input.EntityID = parseID("entityId")
	input.From = parseTime("from")
	input.To = parseTime("to")
	if v := q.Get("entityType"); v != "" {
		t := domain.EntityType(strings.ToUpper(v))
		input.EntityType = &t
	}
	if v := q.Get("action"); v != "" {
		a := domain.AuditAction(strings.ToUpper(v))
		input.Action = &a
	}

	if len(errs) > 0 {
		return audit.QueryInput{}, domain.NewValidationErrors(errs)
	}
	return input, nil
}
