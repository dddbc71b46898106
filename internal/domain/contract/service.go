package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

const (
	defaultDescription = "Payment"
	defaultMethod      = "credit_card"
	maxDescriptionLen  = 255
	maxMethodLen       = 50
)

// Options tunes contract rules.
type Options struct {
	// RequireFullPayment refuses completion while a balance is outstanding.
	RequireFullPayment bool
}

// Service runs the contract and payment lifecycle.
type Service struct {
	repo     Repository
	notifier Notifier
	opts     Options
	logger   *slog.Logger
}

// NewService creates a new contract service.
func NewService(repo Repository, notifier Notifier, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, notifier: notifier, opts: opts, logger: logger}
}

// PaymentRequest describes a payment from the client.
type PaymentRequest struct {
	Amount      decimal.Decimal
	Description string
	Method      string
}

// PaymentResult is a recorded payment with the contract summary after it.
type PaymentResult struct {
	Payment *Payment
	Summary Summary
}

// CreatePayment records a simulated, instantly successful payment. The
// remaining balance is recomputed from the payment history inside the
// contract lock, so concurrent payments can never overpay.
func (s *Service) CreatePayment(ctx context.Context, caller user.Principal, contractID string, req PaymentRequest) (*PaymentResult, error) {
	c, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.ClientID != caller.UserID {
		return nil, ErrClientOnly
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, ErrInvalidAmount
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultDescription
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = defaultMethod
	}
	if len(description) > maxDescriptionLen || len(method) > maxMethodLen {
		return nil, ErrInvalidInput
	}

	var after Summary
	payment, err := s.repo.AddPayment(ctx, contractID, func(locked *Contract, history []Payment) (*Payment, error) {
		if locked.ClientID != caller.UserID {
			return nil, ErrClientOnly
		}
		if locked.Status == StatusCancelled {
			return nil, ErrCancelled
		}
		before := Summarize(locked.Amount, history)
		if req.Amount.GreaterThan(before.RemainingAmount) {
			return nil, fmt.Errorf("%w: remaining %s", ErrExceedsBalance, before.RemainingAmount.StringFixed(domain.MoneyPlaces))
		}

		now := time.Now().UTC()
		p := &Payment{
			ID:            uuid.NewString(),
			ContractID:    locked.ID,
			Amount:        req.Amount,
			Description:   description,
			Status:        PaymentCompleted,
			Method:        method,
			TransactionID: newTransactionID(),
			PaidBy:        caller.UserID,
			PaidAt:        &now,
			CreatedAt:     now,
		}
		after = Summarize(locked.Amount, append(history, *p))
		return p, nil
	})
	if err != nil {
		return nil, s.translate(err, "creating payment")
	}

	s.logger.Info("payment recorded",
		"contract_id", contractID,
		"payment_id", payment.ID,
		"amount", payment.Amount.String(),
		"payment_status", after.PaymentStatus,
	)
	s.notify(ctx, c.FreelancerID, notification.TypePaymentReceived,
		fmt.Sprintf("Payment of $%s received for project %q", payment.Amount.StringFixed(domain.MoneyPlaces), c.ProjectTitle))

	return &PaymentResult{Payment: payment, Summary: after}, nil
}

// Complete closes an active contract and its project. Completion does not
// require full payment unless Options.RequireFullPayment is set.
func (s *Service) Complete(ctx context.Context, caller user.Principal, contractID string) (*Contract, error) {
	c, err := s.repo.Transition(ctx, contractID, func(locked *Contract, history []Payment) (project.Status, error) {
		if !locked.IsParty(caller.UserID) {
			return "", ErrNotParty
		}
		if locked.Status.Terminal() {
			return "", ErrNotActive
		}
		if s.opts.RequireFullPayment && Summarize(locked.Amount, history).RemainingAmount.IsPositive() {
			return "", ErrOutstandingBalance
		}
		now := time.Now().UTC()
		locked.Status = StatusCompleted
		locked.EndDate = &now
		return project.StatusCompleted, nil
	})
	if err != nil {
		return nil, s.translate(err, "completing contract")
	}

	s.logger.Info("contract completed", "contract_id", c.ID, "by", caller.UserID)
	s.notify(ctx, c.counterparty(caller.UserID), notification.TypeContractCompleted,
		fmt.Sprintf("Contract for project %q was marked completed", c.ProjectTitle))
	return c, nil
}

// Cancel terminates an active contract and cancels its project. Only the
// client may cancel.
func (s *Service) Cancel(ctx context.Context, caller user.Principal, contractID string) (*Contract, error) {
	c, err := s.repo.Transition(ctx, contractID, func(locked *Contract, _ []Payment) (project.Status, error) {
		if locked.ClientID != caller.UserID {
			return "", ErrClientOnly
		}
		if locked.Status.Terminal() {
			return "", ErrNotActive
		}
		now := time.Now().UTC()
		locked.Status = StatusCancelled
		locked.EndDate = &now
		return project.StatusCancelled, nil
	})
	if err != nil {
		return nil, s.translate(err, "cancelling contract")
	}

	s.logger.Info("contract cancelled", "contract_id", c.ID)
	s.notify(ctx, c.FreelancerID, notification.TypeContractCancelled,
		fmt.Sprintf("Contract for project %q was cancelled", c.ProjectTitle))
	return c, nil
}

// GetDetail returns the contract, its derived summary, and its payment
// history newest first.
func (s *Service) GetDetail(ctx context.Context, caller user.Principal, contractID string) (*Detail, error) {
	c, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !c.IsParty(caller.UserID) {
		return nil, ErrNotParty
	}

	payments, err := s.repo.ListPayments(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return &Detail{
		Contract: *c,
		Summary:  Summarize(c.Amount, payments),
		Payments: payments,
	}, nil
}

// ListPayments returns a contract's payment history newest first.
func (s *Service) ListPayments(ctx context.Context, caller user.Principal, contractID string) ([]Payment, error) {
	detail, err := s.GetDetail(ctx, caller, contractID)
	if err != nil {
		return nil, err
	}
	return detail.Payments, nil
}

// List returns the caller's contracts with their payment summaries.
func (s *Service) List(ctx context.Context, caller user.Principal) ([]Overview, error) {
	var (
		contracts []Contract
		err       error
	)
	if caller.IsFreelancer() {
		contracts, err = s.repo.ListForFreelancer(ctx, caller.UserID)
	} else {
		contracts, err = s.repo.ListForClient(ctx, caller.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	out := make([]Overview, 0, len(contracts))
	for _, c := range contracts {
		payments, err := s.repo.ListPayments(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("listing payments: %w", err)
		}
		out = append(out, Overview{Contract: c, Summary: Summarize(c.Amount, payments)})
	}
	return out, nil
}

// GetByProject returns the contract of a project.
func (s *Service) GetByProject(ctx context.Context, projectID string) (*Contract, error) {
	c, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return c, nil
}

func (s *Service) load(ctx context.Context, id string) (*Contract, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return c, nil
}

func (s *Service) translate(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrContractNotFound
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidState):
		return err
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%s: %w", action, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (s *Service) notify(ctx context.Context, userID string, typ notification.Type, content string) {
	if s.notifier == nil || userID == "" {
		return
	}
	s.notifier.Notify(ctx, userID, typ, content)
}

func (c *Contract) counterparty(userID string) string {
	if userID == c.ClientID {
		return c.FreelancerID
	}
	return c.ClientID
}

func newTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
