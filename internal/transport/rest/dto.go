package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

type identityResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       *string   `json:"email,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

type userEnvelope struct {
	User identityResponse `json:"user"`
}

func toIdentityResponse(i *domain.Identity) identityResponse {
	return identityResponse{
		ID:          i.ID,
		Email:       i.Email,
		Name:        i.DisplayName,
		Role:        i.Role.String(),
		HasPassword: i.HasPassword(),
		CreatedAt:   i.CreatedAt,
	}
}

type submissionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Category    string     `json:"category"`
	ContentType string     `json:"contentType"`
	Title       string     `json:"title"`
	Body        *string    `json:"body,omitempty"`
	MediaURL    *string    `json:"mediaUrl,omitempty"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy  *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewNotes *string    `json:"reviewNotes,omitempty"`
	Anonymous   bool       `json:"anonymous"`
}

func toSubmissionResponse(s domain.Submission) submissionResponse {
	return submissionResponse{
		ID:          s.ID,
		Category:    s.Category.String(),
		ContentType: s.ContentType.String(),
		Title:       s.Title,
		Body:        s.Body,
		MediaURL:    s.MediaURL,
		Status:      s.Status.String(),
		SubmittedAt: s.SubmittedAt,
		ReviewedAt:  s.ReviewedAt,
		ReviewedBy:  s.ReviewedBy,
		ReviewNotes: s.ReviewNotes,
		Anonymous:   s.IdentityID == nil,
	}
}

type editionItemResponse struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submissionId"`
	DisplayOrder int       `json:"displayOrder"`
	LikeCount    int       `json:"likeCount"`
}

type editionResponse struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	Status      string                `json:"status"`
	IsPublic    bool                  `json:"isPublic"`
	Slug        string                `json:"slug"`
	PublishedAt *time.Time            `json:"publishedAt,omitempty"`
	PublishedBy *uuid.UUID            `json:"publishedBy,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	Items       []editionItemResponse `json:"items"`
}

func toEditionResponse(e domain.Edition) editionResponse {
	items := make([]editionItemResponse, len(e.Items))
	for i, it := range e.Items {
		items[i] = editionItemResponse{
			ID:           it.ID,
			SubmissionID: it.SubmissionID,
			DisplayOrder: it.DisplayOrder,
			LikeCount:    it.LikeCount,
		}
	}
	return editionResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status.String(),
		IsPublic:    e.IsPublic,
		Slug:        e.Slug,
		PublishedAt: e.PublishedAt,
		PublishedBy: e.PublishedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Items:       items,
	}
}

type auditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    *uuid.UUID     `json:"actorId,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   uuid.UUID      `json:"entityId"`
	Details    map[string]any `json:"details,omitempty"`
	RequestID  string         `json:"requestId,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toAuditEntryResponse(e domain.AuditEntry) auditEntryResponse {
	return auditEntryResponse{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action.String(),
		EntityType: e.EntityType.String(),
		EntityID:   e.EntityID,
		Details:    e.Details,
		RequestID:  e.RequestID,
		IPAddress:  e.IPAddress,
		CreatedAt:  e.CreatedAt,
	}
}
