package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an immutable record of a state-changing action.
type AuditEntry struct {
	ID         uuid.UUID
	ActorID    *uuid.UUID
	Action     AuditAction
	EntityType EntityType
	EntityID   uuid.UUID
	Details    map[string]any
	RequestID  string
	IPAddress  string
	CreatedAt  time.Time
}

// AuditFilter selects entries for the admin audit view. Zero values mean
// "any".
type AuditFilter struct {
	ActorID    *uuid.UUID
	EntityType *EntityType
	EntityID   *uuid.UUID
	Action     *AuditAction
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
