package transport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/testserver"
)

type messageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Read       bool   `json:"is_read"`
}

func TestHTTPServer_Messaging(t *testing.T) {
	ts := testserver.New(t, contract.Options{})
	client := ts.Register(t, user.RoleClient)
	freelancer := ts.Register(t, user.RoleFreelancer)

	var sent messageResponse
	status := ts.Do(t, http.MethodPost, "/messages", client.Token, map[string]any{
		"receiver_id": freelancer.ID,
		"content":     "Can you start Monday?",
	}, &sent)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, client.ID, sent.SenderID)
	require.False(t, sent.Read)

	var errBody errorResponse
	status = ts.Do(t, http.MethodPost, "/messages", client.Token, map[string]any{"receiver_id": freelancer.ID}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_input", errBody.Code)

	status = ts.Do(t, http.MethodPost, "/messages", client.Token, map[string]any{"receiver_id": "nobody", "content": "hi"}, &errBody)
	require.Equal(t, http.StatusNotFound, status)

	var notes []struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	status = ts.Do(t, http.MethodGet, "/notifications", freelancer.Token, nil, &notes)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notes, 1)
	require.Equal(t, "new_message", notes[0].Type)
	require.Equal(t, "New message from Test client", notes[0].Content)

	var convs []struct {
		UserID      string `json:"user_id"`
		UnreadCount int    `json:"unread_count"`
		LastMessage struct {
			Content  string `json:"content"`
			IsSender bool   `json:"is_sender"`
		} `json:"last_message"`
	}
	status = ts.Do(t, http.MethodGet, "/conversations", freelancer.Token, nil, &convs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, convs, 1)
	require.Equal(t, client.ID, convs[0].UserID)
	require.Equal(t, 1, convs[0].UnreadCount)
	require.False(t, convs[0].LastMessage.IsSender)

	var thread []messageResponse
	status = ts.Do(t, http.MethodGet, "/messages?user_id="+client.ID, freelancer.Token, nil, &thread)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, thread, 1)
	require.True(t, thread[0].Read)

	status = ts.Do(t, http.MethodGet, "/conversations", freelancer.Token, nil, &convs)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, convs[0].UnreadCount)

	status = ts.Do(t, http.MethodGet, "/messages", freelancer.Token, nil, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHTTPServer_MarkMessagesRead(t *testing.T) {
	ts := testserver.New(t, contract.Options{})
	client := ts.Register(t, user.RoleClient)
	freelancer := ts.Register(t, user.RoleFreelancer)

	var sent messageResponse
	status := ts.Do(t, http.MethodPost, "/messages", client.Token, map[string]any{
		"receiver_id": freelancer.ID,
		"content":     "Invoice attached",
	}, &sent)
	require.Equal(t, http.StatusCreated, status)

	var res struct {
		Success      bool `json:"success"`
		UpdatedCount int  `json:"updated_count"`
	}
	// The sender cannot mark their own outgoing message read.
	status = ts.Do(t, http.MethodPost, "/messages/mark-read", client.Token, map[string]any{"message_ids": []string{sent.ID}}, &res)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, res.UpdatedCount)

	status = ts.Do(t, http.MethodPost, "/messages/mark-read", freelancer.Token, map[string]any{"message_ids": []string{sent.ID}}, &res)
	require.Equal(t, http.StatusOK, status)
	require.True(t, res.Success)
	require.Equal(t, 1, res.UpdatedCount)

	var errBody errorResponse
	status = ts.Do(t, http.MethodPost, "/messages/mark-read", freelancer.Token, map[string]any{"message_ids": []string{}}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_input", errBody.Code)
}
