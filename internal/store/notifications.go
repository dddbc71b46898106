package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/repository"
)

// NotificationRepository implements notification.Repository.
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, content, is_read, created_at`

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.conn().exec(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Content, n.Read, n.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create notification")
	}
	return nil
}

// Get retrieves a notification by ID.
func (r *NotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.conn().queryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.Content, &n.Read, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

// List returns a user's most recent notifications, newest first.
func (r *NotificationRepository) List(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	rows, err := r.db.conn().query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	list := []notification.Notification{}
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// MarkRead flags a notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.conn().exec(ctx, `UPDATE notifications SET is_read = ? WHERE id = ?`, true, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
