package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/proposal"
	"github.com/rpggio/gigboard/internal/metrics"
)

type submitProposalRequest struct {
	ProjectID    string          `json:"project_id"`
	CoverLetter  string          `json:"cover_letter"`
	Amount       decimal.Decimal `json:"proposed_amount"`
	DeliveryTime string          `json:"delivery_time"`
}

type acceptResponse struct {
	Message       string             `json:"message"`
	ContractID    string             `json:"contract_id"`
	Proposal      *proposal.Proposal `json:"proposal"`
	RejectedCount int                `json:"rejected_count"`
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	var req submitProposalRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.Proposals.Submit(r.Context(), caller(r), proposal.SubmitRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListMyProposals(w http.ResponseWriter, r *http.Request) {
	list, err := s.Proposals.ListMine(r.Context(), caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListProjectProposals(w http.ResponseWriter, r *http.Request) {
	list, err := s.Proposals.ListForProject(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetMyProposal(w http.ResponseWriter, r *http.Request) {
	p, err := s.Proposals.GetMine(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAcceptProposal(w http.ResponseWriter, r *http.Request) {
	res, err := s.Proposals.Accept(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.RecordProposalDecision(string(proposal.StatusAccepted))

	writeJSON(w, http.StatusOK, acceptResponse{
		Message:       "Proposal accepted and contract created",
		ContractID:    res.Contract.ID,
		Proposal:      res.Proposal,
		RejectedCount: len(res.Rejected),
	})
}

func (s *Server) handleRejectProposal(w http.ResponseWriter, r *http.Request) {
	p, err := s.Proposals.Reject(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.RecordProposalDecision(string(proposal.StatusRejected))
	writeJSON(w, http.StatusOK, p)
}
