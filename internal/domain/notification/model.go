package notification

import "time"

// Type classifies a notification.
type Type string

const (
	TypeNewProposal       Type = "new_proposal"
	TypeProposalAccepted  Type = "proposal_accepted"
	TypeProposalRejected  Type = "proposal_rejected"
	TypePaymentReceived   Type = "payment_received"
	TypeMilestoneUpdate   Type = "milestone_update"
	TypeContractCompleted Type = "contract_completed"
	TypeContractCancelled Type = "contract_cancelled"
	TypeNewReview         Type = "new_review"
	TypeNewMessage        Type = "new_message"
)

// Notification is a persisted side-effect event addressed to one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      Type      `json:"type"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
