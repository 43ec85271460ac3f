package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedIdentity inserts an identity with the given role and a unique email.
// The password hash is a placeholder; login tests register through the service.
func SeedIdentity(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Identity {
	t.Helper()

	suffix := uniqueSuffix()
	email := "seed-" + suffix + "@example.com"
	hash := "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol"
	ts := now()
	id := domain.Identity{
		ID:           uuid.New(),
		Email:        &email,
		DisplayName:  "Seed " + suffix,
		PasswordHash: &hash,
		Role:         role,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO identities (id, email, display_name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id.ID, id.Email, id.DisplayName, id.PasswordHash, string(id.Role), id.CreatedAt, id.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedIdentity: %v", err)
	}
	return id
}

// SeedSubmission inserts a TEXT submission in the given status.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, status domain.SubmissionStatus) domain.Submission {
	t.Helper()

	body := "Body " + uniqueSuffix()
	s := domain.Submission{
		ID:          uuid.New(),
		Category:    domain.CategoryPoem,
		ContentType: domain.ContentTypeText,
		Title:       "Seed poem " + uniqueSuffix(),
		Body:        &body,
		Status:      status,
		SubmittedAt: now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO submissions (id, category, content_type, title, body, status, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, string(s.Category), string(s.ContentType), s.Title, s.Body, string(s.Status), s.SubmittedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission: %v", err)
	}
	return s
}

// SeedEdition inserts an edition holding submissionIDs in order. A public
// edition is seeded as PUBLISHED, otherwise as DRAFT.
func SeedEdition(t *testing.T, pool *pgxpool.Pool, public bool, submissionIDs ...uuid.UUID) domain.Edition {
	t.Helper()
	ctx := context.Background()

	e := domain.Edition{
		ID:        uuid.New(),
		Title:     "Seed issue " + uniqueSuffix(),
		Status:    domain.EditionStatusDraft,
		IsPublic:  public,
		Slug:      "seed-issue-" + uniqueSuffix(),
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	if public {
		e.Status = domain.EditionStatusPublished
		at := now()
		e.PublishedAt = &at
	}
	e.Items = domain.OrderedItems(e.ID, submissionIDs)

	_, err := pool.Exec(ctx,
		`INSERT INTO editions (id, title, status, is_public, slug, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, string(e.Status), e.IsPublic, e.Slug, e.PublishedAt, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEdition: %v", err)
	}
	for _, it := range e.Items {
		_, err := pool.Exec(ctx,
			`INSERT INTO edition_items (id, edition_id, submission_id, display_order) VALUES ($1, $2, $3, $4)`,
			it.ID, e.ID, it.SubmissionID, it.DisplayOrder,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedEdition item: %v", err)
		}
	}
	return e
}

// CountAudit returns how many audit entries exist for an entity.
func CountAudit(t *testing.T, pool *pgxpool.Pool, entityID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM audit_entries WHERE entity_id = $1`, entityID).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountAudit: %v", err)
	}
	return n
}
