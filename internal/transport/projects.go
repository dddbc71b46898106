package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/project"
)

type createProjectRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	Skills      []string        `json:"skills_required"`
	Duration    string          `json:"duration"`
}

type updateProjectRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Budget      *decimal.Decimal `json:"budget"`
	Skills      []string         `json:"skills_required"`
	Duration    *string          `json:"duration"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.Projects.Create(r.Context(), caller(r), project.CreateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	list, err := s.Projects.List(r.Context(), project.ListOptions{
		Status:   project.Status(q.Get("status")),
		ClientID: q.Get("client_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.Projects.Update(r.Context(), caller(r), chi.URLParam(r, "id"), project.UpdateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCancelProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.Projects.Cancel(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
