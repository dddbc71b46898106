package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle stage of a contract.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Contract is the agreement created when a proposal is accepted.
type Contract struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	ProposalID   string          `json:"proposal_id"`
	FreelancerID string          `json:"freelancer_id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       Status          `json:"status"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`

	// Read from the owning project.
	ClientID     string `json:"client_id"`
	ProjectTitle string `json:"project_title"`
}

// IsParty reports whether userID is the client or the freelancer.
func (c *Contract) IsParty(userID string) bool {
	return userID == c.ClientID || userID == c.FreelancerID
}

// PaymentStatus is the settlement state of a payment row.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is an append-only money transfer against a contract.
type Payment struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contract_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        PaymentStatus   `json:"status"`
	Method        string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	PaidBy        string          `json:"paid_by"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Settlement describes how much of a contract has been paid.
type Settlement string

const (
	SettlementNotPaid       Settlement = "not_paid"
	SettlementPartiallyPaid Settlement = "partially_paid"
	SettlementPaid          Settlement = "paid"
)

// Summary holds the values derived from a contract's payment history.
type Summary struct {
	TotalPaid         decimal.Decimal `json:"total_paid"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	PaymentStatus     Settlement      `json:"payment_status"`
	PaymentPercentage decimal.Decimal `json:"payment_percentage"`
}

// Overview is a contract with its derived payment summary.
type Overview struct {
	Contract
	Summary
}

// Detail is a contract with its derived summary and payment history,
// newest payment first.
type Detail struct {
	Contract
	Summary
	Payments []Payment `json:"payments"`
}
