package transport

import (
	"net/http"

	"github.com/rpggio/gigboard/internal/domain/message"
)

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	ProjectID  string `json:"project_id"`
}

type markMessagesReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

type markMessagesReadResponse struct {
	Success      bool `json:"success"`
	UpdatedCount int  `json:"updated_count"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	m, err := s.Messages.Send(r.Context(), caller(r), message.SendRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	thread, err := s.Messages.Thread(r.Context(), caller(r), r.URL.Query().Get("user_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

func (s *Server) handleMarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	var req markMessagesReadRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	n, err := s.Messages.MarkRead(r.Context(), caller(r), req.MessageIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markMessagesReadResponse{Success: true, UpdatedCount: n})
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	list, err := s.Messages.Conversations(r.Context(), caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
