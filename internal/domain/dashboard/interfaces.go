package dashboard

import "context"

// Repository computes dashboard aggregates.
type Repository interface {
	ClientStats(ctx context.Context, clientID string) (*ClientStats, error)
	// FreelancerStats sums TotalEarnings over completed contracts only.
	FreelancerStats(ctx context.Context, freelancerID string) (*FreelancerStats, error)
}
