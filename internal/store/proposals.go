package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/proposal"
	"github.com/rpggio/gigboard/internal/repository"
)

// ProposalRepository implements proposal.Repository.
type ProposalRepository struct {
	db *DB
}

// NewProposalRepository creates a new ProposalRepository.
func NewProposalRepository(db *DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, project_id, freelancer_id, cover_letter, amount, delivery_time, status, created_at`

// Submit locks the project and inserts the proposal fn builds from it.
func (r *ProposalRepository) Submit(ctx context.Context, projectID string, fn func(*project.Project) (*proposal.Proposal, error)) (*proposal.Proposal, error) {
	var out *proposal.Proposal
	err := r.db.withTx(ctx, func(tx conn) error {
		if err := lock(ctx, tx, "projects", projectID); err != nil {
			return err
		}
		proj, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		p, err := fn(proj)
		if err != nil {
			return err
		}

		_, err = tx.exec(ctx,
			`INSERT INTO proposals (`+proposalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.ProjectID, p.FreelancerID, p.CoverLetter, p.Amount, p.DeliveryTime, string(p.Status), p.CreatedAt,
		)
		if err != nil {
			return writeErr(err, "create proposal")
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get retrieves a proposal by ID.
func (r *ProposalRepository) Get(ctx context.Context, id string) (*proposal.Proposal, error) {
	return getProposal(ctx, r.db.conn(), id)
}

// GetByProjectAndFreelancer retrieves a freelancer's proposal on a project.
func (r *ProposalRepository) GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*proposal.Proposal, error) {
	row := r.db.conn().queryRow(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE project_id = ? AND freelancer_id = ?`,
		projectID, freelancerID)
	return scanProposal(row)
}

// ListForProject returns a project's proposals newest first.
func (r *ProposalRepository) ListForProject(ctx context.Context, projectID string) ([]proposal.Proposal, error) {
	return listProposals(ctx, r.db.conn(),
		`SELECT `+proposalColumns+` FROM proposals WHERE project_id = ? ORDER BY created_at DESC`, projectID)
}

// ListForFreelancer returns a freelancer's proposals newest first.
func (r *ProposalRepository) ListForFreelancer(ctx context.Context, freelancerID string) ([]proposal.Proposal, error) {
	return listProposals(ctx, r.db.conn(),
		`SELECT `+proposalColumns+` FROM proposals WHERE freelancer_id = ? ORDER BY created_at DESC`, freelancerID)
}

// Decide locks the proposal's project, reads the proposal, the project, and
// the other pending proposals inside the transaction, and persists the
// Decision fn returns.
func (r *ProposalRepository) Decide(ctx context.Context, id string, fn func(*proposal.Proposal, *project.Project, []proposal.Proposal) (*proposal.Decision, error)) (*proposal.Decision, error) {
	var out *proposal.Decision
	err := r.db.withTx(ctx, func(tx conn) error {
		var projectID string
		err := tx.queryRow(ctx, `SELECT project_id FROM proposals WHERE id = ?`, id).Scan(&projectID)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get proposal: %w", err)
		}

		if err := lock(ctx, tx, "projects", projectID); err != nil {
			return err
		}
		p, err := getProposal(ctx, tx, id)
		if err != nil {
			return err
		}
		proj, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		pending, err := listProposals(ctx, tx,
			`SELECT `+proposalColumns+` FROM proposals
			 WHERE project_id = ? AND status = ? AND id <> ?
			 ORDER BY created_at`,
			projectID, string(proposal.StatusPending), id)
		if err != nil {
			return err
		}

		d, err := fn(p, proj, pending)
		if err != nil {
			return err
		}
		if err := persistDecision(ctx, tx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func persistDecision(ctx context.Context, tx conn, d *proposal.Decision) error {
	_, err := tx.exec(ctx, `UPDATE proposals SET status = ? WHERE id = ?`, string(d.Proposal.Status), d.Proposal.ID)
	if err != nil {
		return writeErr(err, "update proposal")
	}

	for _, other := range d.Rejected {
		_, err := tx.exec(ctx, `UPDATE proposals SET status = ? WHERE id = ? AND status = ?`,
			string(proposal.StatusRejected), other.ID, string(proposal.StatusPending))
		if err != nil {
			return writeErr(err, "reject proposal")
		}
	}

	if d.ProjectStatus != "" {
		if err := setProjectStatus(ctx, tx, d.Proposal.ProjectID, d.ProjectStatus); err != nil {
			return err
		}
	}

	if c := d.Contract; c != nil {
		_, err := tx.exec(ctx, `
			INSERT INTO contracts (id, project_id, proposal_id, freelancer_id, amount, status, start_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.ProjectID, c.ProposalID, c.FreelancerID, c.Amount, string(c.Status), c.StartDate,
		)
		if err != nil {
			return writeErr(err, "create contract")
		}
	}
	return nil
}

func getProposal(ctx context.Context, c conn, id string) (*proposal.Proposal, error) {
	row := c.queryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = ?`, id)
	return scanProposal(row)
}

func listProposals(ctx context.Context, c conn, query string, args ...any) ([]proposal.Proposal, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := []proposal.Proposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

func scanProposal(row scanner) (*proposal.Proposal, error) {
	var p proposal.Proposal
	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&p.FreelancerID,
		&p.CoverLetter,
		&p.Amount,
		&p.DeliveryTime,
		&p.Status,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan proposal: %w", err)
	}
	return &p, nil
}
