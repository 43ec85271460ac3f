package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/moderation"
	"github.com/heartmarshall/zine-backend/internal/service/submission"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
)

//go:generate moq -out submission_service_mock_test.go -pkg rest . submissionService
//go:generate moq -out moderation_service_mock_test.go -pkg rest . moderationService

type submissionService interface {
	Create(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)
}

type moderationService interface {
	SetStatus(ctx context.Context, input moderation.SetStatusInput) (*domain.Submission, error)
	List(ctx context.Context, input moderation.ListInput) ([]domain.Submission, int, error)
}

// SubmissionHandler serves intake and the moderation queue.
type SubmissionHandler struct {
	submissions submissionService
	moderation  moderationService
	errs        *Errors
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(submissions submissionService, moderation moderationService, errs *Errors) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, moderation: moderation, errs: errs}
}

type createSubmissionRequest struct {
	Category    string  `json:"category"`
	ContentType string  `json:"contentType"`
	Title       string  `json:"title"`
	Body        *string `json:"body"`
	MediaURL    *string `json:"mediaUrl"`
}

type setStatusRequest struct {
	Status      string  `json:"status"`
	ReviewNotes *string `json:"reviewNotes"`
}

// Create handles POST /submissions. Anonymous callers are tagged with their
// X-Session-Id when present.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	input := submission.CreateInput{
		Category:    domain.SubmissionCategory(strings.ToUpper(req.Category)),
		ContentType: domain.ContentType(strings.ToUpper(req.ContentType)),
		Title:       req.Title,
		Body:        req.Body,
		MediaURL:    req.MediaURL,
	}
	if p, ok := middleware.PrincipalFromCtx(r.Context()); ok {
		input.IdentityID = &p.IdentityID
	}
	if tag := sessionID(r); tag != "" {
		input.SessionTag = &tag
	}

	created, err := h.submissions.Create(r.Context(), input)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(*created))
}

// List handles GET /submissions?status=&limit=&offset=.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	input := moderation.ListInput{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.SubmissionStatus(strings.ToUpper(v))
		input.Status = &status
	}

	items, total, err := h.moderation.List(r.Context(), input)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPage(items, total, limit, offset, toSubmissionResponse))
}

// SetStatus handles PATCH /submissions/{id}/status.
func (h *SubmissionHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	var req setStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	updated, err := h.moderation.SetStatus(r.Context(), moderation.SetStatusInput{
		SubmissionID: id,
		Status:       domain.SubmissionStatus(strings.ToUpper(req.Status)),
		ActorID:      p.IdentityID,
		Notes:        req.ReviewNotes,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(*updated))
}

// HeaderSessionID identifies an anonymous browser session.
const HeaderSessionID = "X-Session-Id"

func sessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderSessionID))
}
