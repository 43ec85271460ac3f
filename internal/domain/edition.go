package domain

import (
	"time"

	"github.com/google/uuid"
)

// Edition is a compiled magazine issue made of approved submissions.
type Edition struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Status      EditionStatus
	IsPublic    bool
	Slug        string
	PublishedAt *time.Time
	PublishedBy *uuid.UUID
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []EditionItem
}

// EditionItem places one submission at a position inside an edition.
type EditionItem struct {
	ID           uuid.UUID
	EditionID    uuid.UUID
	SubmissionID uuid.UUID
	DisplayOrder int
	LikeCount    int
}

// OrderedItems builds the item list for submissionIDs with displayOrder
// equal to the slice index, so the result is always dense 0..n-1.
func OrderedItems(editionID uuid.UUID, submissionIDs []uuid.UUID) []EditionItem {
	items := make([]EditionItem, len(submissionIDs))
	for i, sid := range submissionIDs {
		items[i] = EditionItem{
			ID:           uuid.New(),
			EditionID:    editionID,
			SubmissionID: sid,
			DisplayOrder: i,
		}
	}
	return items
}

// EditionFilter narrows edition listings.
type EditionFilter struct {
	Status     *EditionStatus
	PublicOnly bool
	Limit      int
	Offset     int
}

// Like records one session's appreciation of an edition item.
type Like struct {
	ID            uuid.UUID
	EditionItemID uuid.UUID
	SessionID     *string
	IPAddress     string
	CreatedAt     time.Time
}
