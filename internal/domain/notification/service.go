package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// DefaultListLimit caps notification listings.
const DefaultListLimit = 20

// Service persists and serves notifications.
type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
}

// NewService creates a notification service. publisher may be nil.
func NewService(repo Repository, publisher Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// Notify records a notification for userID. Delivery is fire-and-forget:
// failures are logged and never reach the caller.
func (s *Service) Notify(ctx context.Context, userID string, typ Type, content string) {
	ctx = context.WithoutCancel(ctx)

	n := &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("failed to persist notification", "user_id", userID, "type", typ, "error", err)
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.logger.Warn("failed to publish notification", "notification_id", n.ID, "type", typ, "error", err)
	}
}

// List returns the caller's most recent notifications, newest first.
func (s *Service) List(ctx context.Context, caller user.Principal, limit int) ([]Notification, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	list, err := s.repo.List(ctx, caller.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return list, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, caller user.Principal, id string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("loading notification: %w", err)
	}
	if n.UserID != caller.UserID {
		return ErrNotRecipient
	}
	if n.Read {
		return nil
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}
