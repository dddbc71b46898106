package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/gigboard/internal/domain/review"
)

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	rv, err := s.Reviews.Create(r.Context(), caller(r), chi.URLParam(r, "id"), review.CreateRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (s *Server) handleListUserReviews(w http.ResponseWriter, r *http.Request) {
	received, err := s.Reviews.ListForUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, received)
}
