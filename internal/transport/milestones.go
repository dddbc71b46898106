package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/gigboard/internal/domain/milestone"
)

type updateMilestoneRequest struct {
	Status      *milestone.Status `json:"status"`
	Progress    *int              `json:"progress"`
	Description *string           `json:"description"`
}

type addUpdateRequest struct {
	Content       string `json:"content"`
	Progress      *int   `json:"progress"`
	AttachmentURL string `json:"attachment_url"`
	// Apply also sets the milestone's progress to Progress.
	Apply bool `json:"apply_progress"`
}

func (s *Server) handleInitializeMilestones(w http.ResponseWriter, r *http.Request) {
	list, err := s.Milestones.Initialize(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	list, err := s.Milestones.List(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var req updateMilestoneRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	m, err := s.Milestones.Update(r.Context(), caller(r), chi.URLParam(r, "id"), milestone.UpdateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleAddMilestoneUpdate(w http.ResponseWriter, r *http.Request) {
	var req addUpdateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.Milestones.AddUpdate(r.Context(), caller(r), chi.URLParam(r, "id"), milestone.AddUpdateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleListMilestoneUpdates(w http.ResponseWriter, r *http.Request) {
	list, err := s.Milestones.ListUpdates(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
