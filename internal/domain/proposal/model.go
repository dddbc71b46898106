package proposal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/project"
)

// Status represents the decision state of a proposal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Proposal is a freelancer's bid on a project.
type Proposal struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	FreelancerID string          `json:"freelancer_id"`
	CoverLetter  string          `json:"cover_letter"`
	Amount       decimal.Decimal `json:"proposed_amount"`
	DeliveryTime string          `json:"delivery_time,omitempty"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Decision is the set of writes produced by accepting or rejecting a
// proposal. The repository persists all of it in one transaction.
type Decision struct {
	Proposal *Proposal
	// ProjectStatus is applied to the proposal's project when set.
	ProjectStatus project.Status
	// Contract is inserted when set.
	Contract *contract.Contract
	// Rejected lists sibling proposals moved from pending to rejected.
	Rejected []Proposal
}
