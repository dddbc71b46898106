package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/metrics"
)

type paymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Method      string          `json:"payment_method"`
}

// paymentResponse is the recorded payment with the contract's balance after it.
type paymentResponse struct {
	*contract.Payment
	TotalPaid         decimal.Decimal     `json:"total_paid"`
	RemainingAmount   decimal.Decimal     `json:"remaining_amount"`
	PaymentStatus     contract.Settlement `json:"payment_status"`
	PaymentPercentage decimal.Decimal     `json:"payment_percentage"`
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	list, err := s.Contracts.List(r.Context(), caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	d, err := s.Contracts.GetDetail(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.Contracts.CreatePayment(r.Context(), caller(r), chi.URLParam(r, "id"), contract.PaymentRequest(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.RecordPayment(res.Payment.Amount)

	writeJSON(w, http.StatusCreated, paymentResponse{
		Payment:           res.Payment,
		TotalPaid:         res.Summary.TotalPaid,
		RemainingAmount:   res.Summary.RemainingAmount,
		PaymentStatus:     res.Summary.PaymentStatus,
		PaymentPercentage: res.Summary.PaymentPercentage,
	})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	list, err := s.Contracts.ListPayments(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCompleteContract(w http.ResponseWriter, r *http.Request) {
	c, err := s.Contracts.Complete(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.RecordContractTransition(string(c.Status))
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCancelContract(w http.ResponseWriter, r *http.Request) {
	c, err := s.Contracts.Cancel(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.RecordContractTransition(string(c.Status))
	writeJSON(w, http.StatusOK, c)
}
