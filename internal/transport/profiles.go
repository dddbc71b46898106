package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/profile"
	"github.com/rpggio/gigboard/internal/domain/user"
)

type updateProfileRequest struct {
	Bio          *string          `json:"bio"`
	Skills       []string         `json:"skills"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	PortfolioURL *string          `json:"portfolio_url"`
	Location     *string          `json:"location"`
}

type updateProfileResponse struct {
	Message string           `json:"message"`
	Profile *profile.Profile `json:"profile"`
}

type userResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := s.Profiles.Get(r.Context(), caller(r).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.Profiles.Update(r.Context(), caller(r), profile.UpdateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateProfileResponse{Message: "Profile updated", Profile: p})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

func (s *Server) handleListFreelancers(w http.ResponseWriter, r *http.Request) {
	list, err := s.Profiles.ListFreelancers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.Dashboard.Get(r.Context(), caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if d.Client != nil {
		writeJSON(w, http.StatusOK, d.Client)
		return
	}
	writeJSON(w, http.StatusOK, d.Freelancer)
}
