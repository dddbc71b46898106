package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/dashboard"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/proposal"
)

// DashboardRepository implements dashboard.Repository.
type DashboardRepository struct {
	db *DB
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db *DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// ClientStats counts a client's projects by status and the proposals
// submitted to them.
func (r *DashboardRepository) ClientStats(ctx context.Context, clientID string) (*dashboard.ClientStats, error) {
	var stats dashboard.ClientStats
	err := r.db.conn().queryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM projects
		WHERE client_id = ?`,
		string(project.StatusInProgress), string(project.StatusCompleted), clientID,
	).Scan(&stats.TotalProjects, &stats.ActiveProjects, &stats.CompletedProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	err = r.db.conn().queryRow(ctx, `
		SELECT COUNT(*)
		FROM proposals pr
		JOIN projects p ON p.id = pr.project_id
		WHERE p.client_id = ?`, clientID,
	).Scan(&stats.TotalProposals)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}
	return &stats, nil
}

// FreelancerStats counts a freelancer's proposals and contracts and sums
// the amounts of completed contracts. Amounts are summed as decimals
// because SQLite stores them as text.
func (r *DashboardRepository) FreelancerStats(ctx context.Context, freelancerID string) (*dashboard.FreelancerStats, error) {
	stats := dashboard.FreelancerStats{TotalEarnings: decimal.Zero}
	err := r.db.conn().queryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM proposals
		WHERE freelancer_id = ?`,
		string(proposal.StatusAccepted), freelancerID,
	).Scan(&stats.TotalProposals, &stats.AcceptedProposals)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}

	rows, err := r.db.conn().query(ctx, `SELECT status, amount FROM contracts WHERE freelancer_id = ?`, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status contract.Status
			amount decimal.Decimal
		)
		if err := rows.Scan(&status, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		switch status {
		case contract.StatusActive:
			stats.ActiveContracts++
		case contract.StatusCompleted:
			stats.CompletedContracts++
			stats.TotalEarnings = stats.TotalEarnings.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return &stats, nil
}
