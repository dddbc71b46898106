package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// Service handles direct messaging.
type Service struct {
	repo     Repository
	users    UserReader
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new message service.
func NewService(repo Repository, users UserReader, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, users: users, notifier: notifier, logger: logger}
}

// SendRequest defines message inputs.
type SendRequest struct {
	ReceiverID string
	Content    string
	ProjectID  string
}

// Send delivers a message from the caller and notifies the receiver.
func (s *Service) Send(ctx context.Context, caller user.Principal, req SendRequest) (*Message, error) {
	content := strings.TrimSpace(req.Content)
	if req.ReceiverID == "" || content == "" || utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrInvalidInput
	}
	if req.ReceiverID == caller.UserID {
		return nil, ErrSelfMessage
	}

	if _, err := s.loadUser(ctx, req.ReceiverID); err != nil {
		return nil, err
	}
	sender, err := s.loadUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	m := &Message{
		ID:         uuid.NewString(),
		SenderID:   caller.UserID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if req.ProjectID != "" {
		projectID := req.ProjectID
		m.ProjectID = &projectID
	}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message sent", "message_id", m.ID, "sender_id", m.SenderID, "receiver_id", m.ReceiverID)
	if s.notifier != nil {
		s.notifier.Notify(ctx, m.ReceiverID, notification.TypeNewMessage, "New message from "+sender.Name)
	}
	return m, nil
}

// Thread returns the caller's exchange with otherID, oldest first. Messages
// the other user sent the caller are marked read on the way.
func (s *Service) Thread(ctx context.Context, caller user.Principal, otherID string) ([]Message, error) {
	if otherID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.loadUser(ctx, otherID); err != nil {
		return nil, err
	}

	n, err := s.repo.MarkThreadRead(ctx, caller.UserID, otherID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("marking thread read: %w", err)
	}
	if n > 0 {
		s.logger.Debug("messages read", "receiver_id", caller.UserID, "sender_id", otherID, "count", n)
	}

	thread, err := s.repo.Thread(ctx, caller.UserID, otherID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return thread, nil
}

// MarkRead flags the caller's received messages among ids as read and
// returns how many changed.
func (s *Service) MarkRead(ctx context.Context, caller user.Principal, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoMessageIDs
	}
	n, err := s.repo.MarkRead(ctx, caller.UserID, ids, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("marking messages read: %w", err)
	}
	return n, nil
}

// Conversations lists the caller's conversations, most recent first.
func (s *Service) Conversations(ctx context.Context, caller user.Principal) ([]Conversation, error) {
	history, err := s.repo.History(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return Conversations(caller.UserID, history), nil
}

func (s *Service) loadUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
