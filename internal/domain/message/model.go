package message

import (
	"time"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// MaxContentLength bounds a single message body, in runes.
const MaxContentLength = 5000

// Message is a direct message between two users, optionally about a
// project.
type Message struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	ProjectID  *string    `json:"project_id,omitempty"`
	Content    string     `json:"content"`
	Read       bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Entry is a message seen from one participant, with the other side of
// the exchange resolved.
type Entry struct {
	Message
	Counterpart user.User
}

// Conversation summarizes the exchange with one counterpart.
type Conversation struct {
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Role        user.Role   `json:"role"`
	LastMessage LastMessage `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

// LastMessage previews the most recent message of a conversation.
type LastMessage struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsSender  bool      `json:"is_sender"`
}

// Conversations folds userID's message history, newest first, into one
// conversation per counterpart. The result keeps that order, so the most
// recently active conversation comes first.
func Conversations(userID string, history []Entry) []Conversation {
	out := []Conversation{}
	index := map[string]int{}
	for _, e := range history {
		i, seen := index[e.Counterpart.ID]
		if !seen {
			i = len(out)
			index[e.Counterpart.ID] = i
			out = append(out, Conversation{
				UserID: e.Counterpart.ID,
				Name:   e.Counterpart.Name,
				Role:   e.Counterpart.Role,
				LastMessage: LastMessage{
					Content:   e.Content,
					Timestamp: e.CreatedAt,
					IsSender:  e.SenderID == userID,
				},
			})
		}
		if e.ReceiverID == userID && !e.Read {
			out[i].UnreadCount++
		}
	}
	return out
}
