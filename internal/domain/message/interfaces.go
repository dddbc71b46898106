package message

import (
	"context"
	"time"

	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/user"
)

// Repository provides persistence for messages.
type Repository interface {
	// Create inserts a message. An unknown project yields
	// repository.ErrForeignKeyViolation.
	Create(ctx context.Context, m *Message) error
	// Thread returns the messages exchanged between a and b, oldest first.
	Thread(ctx context.Context, a, b string) ([]Message, error)
	// MarkRead flags the listed messages addressed to receiverID as read and
	// reports how many changed. Ids addressed to anyone else are skipped.
	MarkRead(ctx context.Context, receiverID string, ids []string, at time.Time) (int, error)
	// MarkThreadRead flags every unread message from senderID to receiverID.
	MarkThreadRead(ctx context.Context, receiverID, senderID string, at time.Time) (int, error)
	// History returns every message userID sent or received, newest first.
	History(ctx context.Context, userID string) ([]Entry, error)
}

// UserReader looks up accounts.
type UserReader interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// Notifier receives side-effect events.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}
