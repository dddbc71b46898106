package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/milestone"
	"github.com/rpggio/gigboard/internal/repository"
)

// MilestoneRepository implements milestone.Repository.
type MilestoneRepository struct {
	db *DB
}

// NewMilestoneRepository creates a new MilestoneRepository.
func NewMilestoneRepository(db *DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

const milestoneColumns = `id, project_id, name, description, status, progress, sort_order, started_at, completed_at, created_at, updated_at`

// Initialize locks the project and inserts batch unless the project
// already has milestones.
func (r *MilestoneRepository) Initialize(ctx context.Context, projectID string, batch []milestone.Milestone) error {
	return r.db.withTx(ctx, func(tx conn) error {
		if err := lock(ctx, tx, "projects", projectID); err != nil {
			return err
		}

		var existing int
		if err := tx.queryRow(ctx, `SELECT COUNT(*) FROM milestones WHERE project_id = ?`, projectID).Scan(&existing); err != nil {
			return fmt.Errorf("failed to count milestones: %w", err)
		}
		if existing > 0 {
			return repository.ErrConflict
		}

		for _, m := range batch {
			_, err := tx.exec(ctx,
				`INSERT INTO milestones (`+milestoneColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID,
				m.ProjectID,
				m.Name,
				m.Description,
				string(m.Status),
				m.Progress,
				m.Order,
				nullTime(m.StartedAt),
				nullTime(m.CompletedAt),
				m.CreatedAt,
				m.UpdatedAt,
			)
			if err != nil {
				return writeErr(err, "create milestone")
			}
		}
		return nil
	})
}

// Get retrieves a milestone by ID.
func (r *MilestoneRepository) Get(ctx context.Context, id string) (*milestone.Milestone, error) {
	return getMilestone(ctx, r.db.conn(), id)
}

// List returns a project's milestones in order, with their update counts.
func (r *MilestoneRepository) List(ctx context.Context, projectID string) ([]milestone.Milestone, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT m.id, m.project_id, m.name, m.description, m.status, m.progress, m.sort_order,
		       m.started_at, m.completed_at, m.created_at, m.updated_at,
		       (SELECT COUNT(*) FROM milestone_updates u WHERE u.milestone_id = m.id)
		FROM milestones m
		WHERE m.project_id = ?
		ORDER BY m.sort_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := []milestone.Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows, true)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

// ListUpdates returns a milestone's updates newest first with author names.
func (r *MilestoneRepository) ListUpdates(ctx context.Context, milestoneID string) ([]milestone.Update, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT u.id, u.milestone_id, u.user_id, usr.name, u.content, u.progress, u.attachment_url, u.created_at
		FROM milestone_updates u
		JOIN users usr ON usr.id = u.user_id
		WHERE u.milestone_id = ?
		ORDER BY u.created_at DESC`, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestone updates: %w", err)
	}
	defer rows.Close()

	updates := []milestone.Update{}
	for rows.Next() {
		var (
			u        milestone.Update
			progress sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.MilestoneID, &u.UserID, &u.UserName, &u.Content, &progress, &u.AttachmentURL, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone update: %w", err)
		}
		if progress.Valid {
			p := int(progress.Int64)
			u.Progress = &p
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list milestone updates: %w", err)
	}
	return updates, nil
}

// Mutate locks the project's contract and then the milestone, hands both
// to fn, and persists the Write fn returns. Contracts are locked before
// the rows they govern, matching Transition.
func (r *MilestoneRepository) Mutate(ctx context.Context, id string, fn func(*milestone.Milestone, *contract.Contract) (*milestone.Write, error)) (*milestone.Write, error) {
	var out *milestone.Write
	err := r.db.withTx(ctx, func(tx conn) error {
		var projectID string
		err := tx.queryRow(ctx, `SELECT project_id FROM milestones WHERE id = ?`, id).Scan(&projectID)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get milestone: %w", err)
		}

		c, err := lockProjectContract(ctx, tx, projectID)
		if err != nil {
			return err
		}

		if err := lock(ctx, tx, "milestones", id); err != nil {
			return err
		}
		m, err := getMilestone(ctx, tx, id)
		if err != nil {
			return err
		}
		w, err := fn(m, c)
		if err != nil {
			return err
		}

		if ms := w.Milestone; ms != nil {
			_, err := tx.exec(ctx, `
				UPDATE milestones
				SET description = ?, status = ?, progress = ?, started_at = ?, completed_at = ?, updated_at = ?
				WHERE id = ?`,
				ms.Description, string(ms.Status), ms.Progress,
				nullTime(ms.StartedAt), nullTime(ms.CompletedAt), ms.UpdatedAt, ms.ID,
			)
			if err != nil {
				return writeErr(err, "update milestone")
			}
		}

		if u := w.Update; u != nil {
			var progress sql.NullInt64
			if u.Progress != nil {
				progress = sql.NullInt64{Int64: int64(*u.Progress), Valid: true}
			}
			_, err := tx.exec(ctx, `
				INSERT INTO milestone_updates (id, milestone_id, user_id, content, progress, attachment_url, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				u.ID, u.MilestoneID, u.UserID, u.Content, progress, u.AttachmentURL, u.CreatedAt,
			)
			if err != nil {
				return writeErr(err, "create milestone update")
			}
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func getMilestone(ctx context.Context, c conn, id string) (*milestone.Milestone, error) {
	row := c.queryRow(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	return scanMilestone(row, false)
}

func scanMilestone(row scanner, withCount bool) (*milestone.Milestone, error) {
	var (
		m                  milestone.Milestone
		started, completed sql.NullTime
	)
	dest := []any{
		&m.ID,
		&m.ProjectID,
		&m.Name,
		&m.Description,
		&m.Status,
		&m.Progress,
		&m.Order,
		&started,
		&completed,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
	if withCount {
		dest = append(dest, &m.UpdatesCount)
	}

	err := row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan milestone: %w", err)
	}
	m.StartedAt = timePtr(started)
	m.CompletedAt = timePtr(completed)
	return &m, nil
}

// lockProjectContract locks and returns the project's contract, or nil
// when the project has none.
func lockProjectContract(ctx context.Context, tx conn, projectID string) (*contract.Contract, error) {
	var contractID string
	err := tx.queryRow(ctx, `SELECT id FROM contracts WHERE project_id = ?`, projectID).Scan(&contractID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	if err := lock(ctx, tx, "contracts", contractID); err != nil {
		return nil, err
	}
	return getContract(ctx, tx, contractID)
}
