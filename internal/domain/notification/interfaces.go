package notification

import "context"

// Repository provides persistence for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// Publisher fans persisted notifications out to an external broker.
type Publisher interface {
	Publish(ctx context.Context, n *Notification) error
}
