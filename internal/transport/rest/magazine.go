package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/like"
	"github.com/heartmarshall/zine-backend/internal/service/publication"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
	"github.com/heartmarshall/zine-backend/pkg/ctxutil"
)

//go:generate moq -out publication_service_mock_test.go -pkg rest . publicationService
//go:generate moq -out like_service_mock_test.go -pkg rest . likeService

type publicationService interface {
	Create(ctx context.Context, input publication.CreateInput) (*domain.Edition, error)
	Update(ctx context.Context, input publication.UpdateInput) (*domain.Edition, error)
	Delete(ctx context.Context, id, actor uuid.UUID) error
	Publish(ctx context.Context, id, actor uuid.UUID) (*domain.Edition, error)
	Unpublish(ctx context.Context, id, actor uuid.UUID) (*domain.Edition, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Edition, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Edition, error)
	List(ctx context.Context, input publication.ListInput) ([]domain.Edition, int, error)
}

type likeService interface {
	Toggle(ctx context.Context, input like.ToggleInput) (*like.ToggleResult, error)
}

// MagazineHandler serves editions and item likes.
type MagazineHandler struct {
	editions publicationService
	likes    likeService
	errs     *Errors
}

// NewMagazineHandler creates a MagazineHandler.
func NewMagazineHandler(editions publicationService, likes likeService, errs *Errors) *MagazineHandler {
	return &MagazineHandler{editions: editions, likes: likes, errs: errs}
}

type createEditionRequest struct {
	Title         string      `json:"title"`
	Description   *string     `json:"description"`
	SubmissionIDs []uuid.UUID `json:"submissionIds"`
	IsPublic      bool        `json:"isPublic"`
}

type updateEditionRequest struct {
	Title         *string     `json:"title"`
	Description   *string     `json:"description"`
	SubmissionIDs []uuid.UUID `json:"submissionIds"`
}

type editionActionRequest struct {
	Action string `json:"action"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// List handles GET /magazines. Admins may pass ?all=true to include drafts
// and archived editions.
func (h *MagazineHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	input := publication.ListInput{Limit: limit, Offset: offset}
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
		p, ok := middleware.PrincipalFromCtx(r.Context())
		if !ok || p.Role != domain.RoleAdmin {
			h.errs.WriteError(w, r, fmt.Errorf("all editions: %w", domain.ErrForbidden))
			return
		}
		input.All = true
		if v := r.URL.Query().Get("status"); v != "" {
			status := domain.EditionStatus(strings.ToUpper(v))
			input.Status = &status
		}
	}

	items, total, err := h.editions.List(r.Context(), input)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPage(items, total, limit, offset, toEditionResponse))
}

// GetBySlug handles GET /magazines/{slug}.
func (h *MagazineHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	e, err := h.editions.GetBySlug(r.Context(), chi.URLParam(r, magazineParam))
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEditionResponse(*e))
}

// Create handles POST /magazines.
func (h *MagazineHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req createEditionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	created, err := h.editions.Create(r.Context(), publication.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		SubmissionIDs: req.SubmissionIDs,
		IsPublic:      req.IsPublic,
		ActorID:       p.IdentityID,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEditionResponse(*created))
}

// Update handles PUT /magazines/{id}. Only DRAFT editions are editable.
func (h *MagazineHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	id, err := uuidParam(r, magazineParam)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	var req updateEditionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	current, err := h.editions.Get(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	if current.Status != domain.EditionStatusDraft {
		h.errs.WriteError(w, r, fmt.Errorf("edition %s is %s: %w", id, current.Status, domain.ErrConflict))
		return
	}

	updated, err := h.editions.Update(r.Context(), publication.UpdateInput{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		SubmissionIDs: req.SubmissionIDs,
		ActorID:       p.IdentityID,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEditionResponse(*updated))
}

// Transition handles PATCH /magazines/{id} with {"action":"publish"|"unpublish"}.
func (h *MagazineHandler) Transition(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	id, err := uuidParam(r, magazineParam)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	var req editionActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	var updated *domain.Edition
	switch strings.ToLower(req.Action) {
	case "publish":
		updated, err = h.editions.Publish(r.Context(), id, p.IdentityID)
	case "unpublish":
		updated, err = h.editions.Unpublish(r.Context(), id, p.IdentityID)
	default:
		err = domain.NewValidationError("action", "must be publish or unpublish")
	}
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEditionResponse(*updated))
}

// Delete handles DELETE /magazines/{id}.
func (h *MagazineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		h.errs.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	id, err := uuidParam(r, magazineParam)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	if err := h.editions.Delete(r.Context(), id, p.IdentityID); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike handles POST /magazines/items/{itemId}/like.
func (h *MagazineHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuidParam(r, "itemId")
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	result, err := h.likes.Toggle(r.Context(), like.ToggleInput{
		ItemID:    itemID,
		SessionID: sessionID(r),
		IPAddress: ctxutil.ClientIPFromCtx(r.Context()),
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Liked: result.Liked, Count: result.Count})
}
