package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gigboard/internal/domain/message"
)

// MessageRepository implements message.Repository.
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, sender_id, receiver_id, project_id, content, is_read, read_at, created_at`

// Create inserts a message.
func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	var projectID sql.NullString
	if m.ProjectID != nil {
		projectID = sql.NullString{String: *m.ProjectID, Valid: true}
	}
	_, err := r.db.conn().exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.ReceiverID, projectID, m.Content, m.Read, nullTime(m.ReadAt), m.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create message")
	}
	return nil
}

// Thread returns the messages between a and b, oldest first.
func (r *MessageRepository) Thread(ctx context.Context, a, b string) ([]message.Message, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at, id`, a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	thread := []message.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		thread = append(thread, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return thread, nil
}

// MarkRead flags the unread messages among ids addressed to receiverID.
func (r *MessageRepository) MarkRead(ctx context.Context, receiverID string, ids []string, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := []any{true, at, receiverID, false}
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	res, err := r.db.conn().exec(ctx, `
		UPDATE messages SET is_read = ?, read_at = ?
		WHERE receiver_id = ? AND is_read = ? AND id IN (`+placeholders+`)`, args...)
	return affected(res, err)
}

// MarkThreadRead flags every unread message from senderID to receiverID.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID string, at time.Time) (int, error) {
	res, err := r.db.conn().exec(ctx, `
		UPDATE messages SET is_read = ?, read_at = ?
		WHERE receiver_id = ? AND sender_id = ? AND is_read = ?`,
		true, at, receiverID, senderID, false)
	return affected(res, err)
}

// History returns every message userID sent or received, newest first,
// with the other participant resolved.
func (r *MessageRepository) History(ctx context.Context, userID string) ([]message.Entry, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT m.id, m.sender_id, m.receiver_id, m.project_id, m.content, m.is_read, m.read_at, m.created_at,
		       u.id, u.email, u.name, u.role, u.created_at
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END
		WHERE m.sender_id = ? OR m.receiver_id = ?
		ORDER BY m.created_at DESC, m.id DESC`, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list message history: %w", err)
	}
	defer rows.Close()

	history := []message.Entry{}
	for rows.Next() {
		var (
			e         message.Entry
			projectID sql.NullString
			readAt    sql.NullTime
		)
		err := rows.Scan(
			&e.ID, &e.SenderID, &e.ReceiverID, &projectID, &e.Content, &e.Read, &readAt, &e.CreatedAt,
			&e.Counterpart.ID, &e.Counterpart.Email, &e.Counterpart.Name, &e.Counterpart.Role, &e.Counterpart.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		e.ProjectID = stringPtr(projectID)
		e.ReadAt = timePtr(readAt)
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list message history: %w", err)
	}
	return history, nil
}

func scanMessage(row scanner) (*message.Message, error) {
	var (
		m         message.Message
		projectID sql.NullString
		readAt    sql.NullTime
	)
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &projectID, &m.Content, &m.Read, &readAt, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan message: %w", err)
	}
	m.ProjectID = stringPtr(projectID)
	m.ReadAt = timePtr(readAt)
	return &m, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func affected(res sql.Result, err error) (int, error) {
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return int(n), nil
}
