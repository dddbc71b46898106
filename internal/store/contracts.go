package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/repository"
)

// ContractRepository implements contract.Repository.
type ContractRepository struct {
	db *DB
}

// NewContractRepository creates a new ContractRepository.
func NewContractRepository(db *DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractSelect = `
	SELECT c.id, c.project_id, c.proposal_id, c.freelancer_id, c.amount, c.status,
	       c.start_date, c.end_date, p.client_id, p.title
	FROM contracts c
	JOIN projects p ON p.id = c.project_id`

const paymentColumns = `id, contract_id, amount, description, status, payment_method, transaction_id, paid_by, paid_at, created_at`

// Get retrieves a contract by ID.
func (r *ContractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	return getContract(ctx, r.db.conn(), id)
}

// GetByProject retrieves the contract of a project.
func (r *ContractRepository) GetByProject(ctx context.Context, projectID string) (*contract.Contract, error) {
	row := r.db.conn().queryRow(ctx, contractSelect+` WHERE c.project_id = ?`, projectID)
	return scanContract(row)
}

// ListForFreelancer returns the freelancer's contracts, newest first.
func (r *ContractRepository) ListForFreelancer(ctx context.Context, freelancerID string) ([]contract.Contract, error) {
	return r.list(ctx, contractSelect+` WHERE c.freelancer_id = ? ORDER BY c.start_date DESC`, freelancerID)
}

// ListForClient returns the contracts on the client's projects, newest first.
func (r *ContractRepository) ListForClient(ctx context.Context, clientID string) ([]contract.Contract, error) {
	return r.list(ctx, contractSelect+` WHERE p.client_id = ? ORDER BY c.start_date DESC`, clientID)
}

// ListPayments returns a contract's payments newest first.
func (r *ContractRepository) ListPayments(ctx context.Context, contractID string) ([]contract.Payment, error) {
	return listPayments(ctx, r.db.conn(), contractID)
}

// AddPayment locks the contract, hands fn the contract and its payment
// history read inside the transaction, and inserts the payment fn returns.
func (r *ContractRepository) AddPayment(ctx context.Context, contractID string, fn func(*contract.Contract, []contract.Payment) (*contract.Payment, error)) (*contract.Payment, error) {
	var out *contract.Payment
	err := r.db.withTx(ctx, func(tx conn) error {
		c, payments, err := lockContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		p, err := fn(c, payments)
		if err != nil {
			return err
		}

		_, err = tx.exec(ctx,
			`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID,
			p.ContractID,
			p.Amount,
			p.Description,
			string(p.Status),
			p.Method,
			p.TransactionID,
			p.PaidBy,
			nullTime(p.PaidAt),
			p.CreatedAt,
		)
		if err != nil {
			return writeErr(err, "create payment")
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transition locks the contract, lets fn change its status, and writes the
// contract and project statuses together.
func (r *ContractRepository) Transition(ctx context.Context, contractID string, fn func(*contract.Contract, []contract.Payment) (project.Status, error)) (*contract.Contract, error) {
	var out *contract.Contract
	err := r.db.withTx(ctx, func(tx conn) error {
		c, payments, err := lockContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		projectStatus, err := fn(c, payments)
		if err != nil {
			return err
		}

		_, err = tx.exec(ctx, `UPDATE contracts SET status = ?, end_date = ? WHERE id = ?`,
			string(c.Status), nullTime(c.EndDate), c.ID)
		if err != nil {
			return writeErr(err, "update contract")
		}
		if projectStatus != "" {
			if err := setProjectStatus(ctx, tx, c.ProjectID, projectStatus); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ContractRepository) list(ctx context.Context, query string, args ...any) ([]contract.Contract, error) {
	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := []contract.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func lockContract(ctx context.Context, tx conn, id string) (*contract.Contract, []contract.Payment, error) {
	if err := lock(ctx, tx, "contracts", id); err != nil {
		return nil, nil, err
	}
	c, err := getContract(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	payments, err := listPayments(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, payments, nil
}

func getContract(ctx context.Context, c conn, id string) (*contract.Contract, error) {
	row := c.queryRow(ctx, contractSelect+` WHERE c.id = ?`, id)
	return scanContract(row)
}

func scanContract(row scanner) (*contract.Contract, error) {
	var (
		c   contract.Contract
		end sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&c.ProposalID,
		&c.FreelancerID,
		&c.Amount,
		&c.Status,
		&c.StartDate,
		&end,
		&c.ClientID,
		&c.ProjectTitle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan contract: %w", err)
	}
	c.EndDate = timePtr(end)
	return &c, nil
}

func listPayments(ctx context.Context, c conn, contractID string) ([]contract.Payment, error) {
	rows, err := c.query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE contract_id = ? ORDER BY created_at DESC`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []contract.Payment{}
	for rows.Next() {
		var (
			p      contract.Payment
			paidAt sql.NullTime
		)
		err := rows.Scan(
			&p.ID,
			&p.ContractID,
			&p.Amount,
			&p.Description,
			&p.Status,
			&p.Method,
			&p.TransactionID,
			&p.PaidBy,
			&paidAt,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.PaidAt = timePtr(paidAt)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
