package domain

import "slices"

// Role represents the authorization level of an identity.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleModerator   Role = "MODERATOR"
	RoleContributor Role = "CONTRIBUTOR"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleContributor:
		return true
	}
	return false
}

// In reports whether r is one of the allowed roles.
func (r Role) In(allowed ...Role) bool {
	return r.IsValid() && slices.Contains(allowed, r)
}

// SubmissionStatus is the moderation state of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
	SubmissionStatusArchived SubmissionStatus = "ARCHIVED"
)

func (s SubmissionStatus) String() string { return string(s) }

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusArchived:
		return true
	}
	return false
}

// ReviewAction returns the audit action recorded when a moderator moves a
// submission into s. Only APPROVED and REJECTED are reachable review targets.
func (s SubmissionStatus) ReviewAction() (AuditAction, bool) {
	switch s {
	case SubmissionStatusApproved:
		return AuditActionApproveSubmission, true
	case SubmissionStatusRejected:
		return AuditActionRejectSubmission, true
	case SubmissionStatusPending, SubmissionStatusArchived:
		return "", false
	}
	return "", false
}

// SubmissionCategory classifies what a contributor sent in.
type SubmissionCategory string

const (
	CategoryStory   SubmissionCategory = "STORY"
	CategoryPoem    SubmissionCategory = "POEM"
	CategoryArtwork SubmissionCategory = "ARTWORK"
	CategoryPhoto   SubmissionCategory = "PHOTO"
	CategoryAudio   SubmissionCategory = "AUDIO"
	CategoryOther   SubmissionCategory = "OTHER"
)

func (c SubmissionCategory) String() string { return string(c) }

func (c SubmissionCategory) IsValid() bool {
	switch c {
	case CategoryStory, CategoryPoem, CategoryArtwork, CategoryPhoto, CategoryAudio, CategoryOther:
		return true
	}
	return false
}

// ContentType describes the payload carried by a submission.
type ContentType string

const (
	ContentTypeText    ContentType = "TEXT"
	ContentTypeImage   ContentType = "IMAGE"
	ContentTypeAudio   ContentType = "AUDIO"
	ContentTypeDrawing ContentType = "DRAWING"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeText, ContentTypeImage, ContentTypeAudio, ContentTypeDrawing:
		return true
	}
	return false
}

// RequiresMedia reports whether the payload lives behind a media URL rather
// than inline text.
func (c ContentType) RequiresMedia() bool {
	switch c {
	case ContentTypeImage, ContentTypeAudio, ContentTypeDrawing:
		return true
	case ContentTypeText:
		return false
	}
	return false
}

// EditionStatus is the lifecycle state of an edition (magazine).
type EditionStatus string

const (
	EditionStatusDraft     EditionStatus = "DRAFT"
	EditionStatusPublished EditionStatus = "PUBLISHED"
	EditionStatusArchived  EditionStatus = "ARCHIVED"
)

func (s EditionStatus) String() string { return string(s) }

func (s EditionStatus) IsValid() bool {
	switch s {
	case EditionStatusDraft, EditionStatusPublished, EditionStatusArchived:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeIdentity   EntityType = "IDENTITY"
	EntityTypeSubmission EntityType = "SUBMISSION"
	EntityTypeEdition    EntityType = "EDITION"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeIdentity, EntityTypeSubmission, EntityTypeEdition:
		return true
	}
	return false
}

// AuditAction is the closed vocabulary of recorded state changes.
type AuditAction string

const (
	AuditActionRegister          AuditAction = "REGISTER"
	AuditActionLogin             AuditAction = "LOGIN"
	AuditActionLogout            AuditAction = "LOGOUT"
	AuditActionCreateSubmission  AuditAction = "CREATE_SUBMISSION"
	AuditActionApproveSubmission AuditAction = "APPROVE_SUBMISSION"
	AuditActionRejectSubmission  AuditAction = "REJECT_SUBMISSION"
	AuditActionCreateEdition     AuditAction = "CREATE_EDITION"
	AuditActionUpdateEdition     AuditAction = "UPDATE_EDITION"
	AuditActionPublishEdition    AuditAction = "PUBLISH_EDITION"
	AuditActionUnpublishEdition  AuditAction = "UNPUBLISH_EDITION"
	AuditActionDeleteEdition     AuditAction = "DELETE_EDITION"
	AuditActionPromoteIdentity   AuditAction = "PROMOTE_IDENTITY"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionRegister, AuditActionLogin, AuditActionLogout,
		AuditActionCreateSubmission, AuditActionApproveSubmission, AuditActionRejectSubmission,
		AuditActionCreateEdition, AuditActionUpdateEdition, AuditActionPublishEdition,
		AuditActionUnpublishEdition, AuditActionDeleteEdition, AuditActionPromoteIdentity:
		return true
	}
	return false
}
