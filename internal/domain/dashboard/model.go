package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// ClientStats summarizes a client's projects and the bids they drew.
type ClientStats struct {
	TotalProjects     int `json:"total_projects"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	TotalProposals    int `json:"total_proposals"`
}

// FreelancerStats summarizes a freelancer's bids, contracts and earnings.
type FreelancerStats struct {
	TotalProposals     int             `json:"total_proposals"`
	AcceptedProposals  int             `json:"accepted_proposals"`
	ActiveContracts    int             `json:"active_contracts"`
	CompletedContracts int             `json:"completed_contracts"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
}

// Dashboard holds the stats for the caller's role. Exactly one of Client
// and Freelancer is set.
type Dashboard struct {
	Role       user.Role
	Client     *ClientStats
	Freelancer *FreelancerStats
}
