// Package like toggles per-session appreciation of edition items.
package like

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

const maxSessionIDLength = 128

type likeRepo interface {
	ItemPublic(ctx context.Context, itemID uuid.UUID) (bool, error)
	Insert(ctx context.Context, l *domain.Like) error
	Delete(ctx context.Context, itemID uuid.UUID, sessionID string) (bool, error)
	Count(ctx context.Context, itemID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements like toggling.
type Service struct {
	log   *slog.Logger
	likes likeRepo
	tx    txManager
	now   func() time.Time
}

// NewService creates a new like service instance.
func NewService(logger *slog.Logger, likes likeRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "like"),
		likes: likes,
		tx:    tx,
		now:   time.Now,
	}
}

// ToggleInput identifies the item and the browser session liking it.
type ToggleInput struct {
	ItemID    uuid.UUID
	SessionID string
	IPAddress string
}

// Validate validates the toggle input.
func (i ToggleInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "itemId", Message: "required"})
	}
	if i.SessionID == "" {
		errs = append(errs, domain.FieldError{Field: "sessionId", Message: "required"})
	} else if len(i.SessionID) > maxSessionIDLength {
		errs = append(errs, domain.FieldError{Field: "sessionId", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ToggleResult reports the session's like state after the toggle and the
// item's new total.
type ToggleResult struct {
	Liked bool
	Count int
}

// Toggle removes the session's like on the item if there is one and adds it
// otherwise. Items of editions that are not public are treated as unknown
// and yield ErrNotFound.
func (s *Service) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result ToggleResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		public, err := s.likes.ItemPublic(txCtx, input.ItemID)
		if err != nil {
			return fmt.Errorf("item visibility: %w", err)
		}
		if !public {
			return fmt.Errorf("edition item %s: %w", input.ItemID, domain.ErrNotFound)
		}

		removed, err := s.likes.Delete(txCtx, input.ItemID, input.SessionID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}

		if !removed {
			// A concurrent toggle from the same session may have inserted it
			// already; the insert is then a no-op.
			err := s.likes.Insert(txCtx, &domain.Like{
				ID:            uuid.New(),
				EditionItemID: input.ItemID,
				SessionID:     &input.SessionID,
				IPAddress:     input.IPAddress,
				CreatedAt:     s.now(),
			})
			if err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
		}
		result.Liked = !removed

		result.Count, err = s.likes.Count(txCtx, input.ItemID)
		if err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("like.Toggle: %w", err)
	}

	s.log.DebugContext(ctx, "like toggled",
		slog.String("item_id", input.ItemID.String()),
		slog.Bool("liked", result.Liked),
		slog.Int("count", result.Count))

	return &result, nil
}
