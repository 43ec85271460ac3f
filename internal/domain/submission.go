package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a piece of community content awaiting or past moderation.
type Submission struct {
	ID          uuid.UUID
	Category    SubmissionCategory
	ContentType ContentType
	Title       string
	Body        *string
	MediaURL    *string
	Status      SubmissionStatus
	SubmittedAt time.Time
	ReviewedAt  *time.Time
	ReviewedBy  *uuid.UUID
	ReviewNotes *string
	IdentityID  *uuid.UUID
	SessionTag  *string
}

// SubmissionFilter narrows the moderation queue listing.
type SubmissionFilter struct {
	Status *SubmissionStatus
	Limit  int
	Offset int
}
