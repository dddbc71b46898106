package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/repository"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, client_id, title, description, budget, skills, duration, status, created_at, updated_at`

// Create inserts a project.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	skills, err := encodeSkills(proj.Skills)
	if err != nil {
		return err
	}

	_, err = r.db.conn().exec(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		proj.ID,
		proj.ClientID,
		proj.Title,
		proj.Description,
		proj.Budget,
		skills,
		proj.Duration,
		string(proj.Status),
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "create project")
	}
	return nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	return getProject(ctx, r.db.conn(), id)
}

// List returns projects newest first, filtered by opts.
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	var (
		where []string
		args  []any
	)
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.ClientID != "" {
		where = append(where, "client_id = ?")
		args = append(args, opts.ClientID)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, max(opts.Offset, 0))
	}

	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update locks the project, applies fn, and writes the editable fields back.
func (r *ProjectRepository) Update(ctx context.Context, id string, fn func(*project.Project) error) (*project.Project, error) {
	var out *project.Project
	err := r.db.withTx(ctx, func(tx conn) error {
		if err := lock(ctx, tx, "projects", id); err != nil {
			return err
		}
		proj, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(proj); err != nil {
			return err
		}

		skills, err := encodeSkills(proj.Skills)
		if err != nil {
			return err
		}
		_, err = tx.exec(ctx, `
			UPDATE projects
			SET title = ?, description = ?, budget = ?, skills = ?, duration = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			proj.Title, proj.Description, proj.Budget, skills, proj.Duration, string(proj.Status), proj.UpdatedAt, proj.ID,
		)
		if err != nil {
			return writeErr(err, "update project")
		}
		out = proj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func getProject(ctx context.Context, c conn, id string) (*project.Project, error) {
	row := c.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func setProjectStatus(ctx context.Context, tx conn, id string, status project.Status) error {
	_, err := tx.exec(ctx, `UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now(), id)
	if err != nil {
		return writeErr(err, "update project status")
	}
	return nil
}

func scanProject(row scanner) (*project.Project, error) {
	var (
		proj   project.Project
		skills string
	)
	err := row.Scan(
		&proj.ID,
		&proj.ClientID,
		&proj.Title,
		&proj.Description,
		&proj.Budget,
		&skills,
		&proj.Duration,
		&proj.Status,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &proj.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode project skills: %w", err)
	}
	return &proj, nil
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("failed to encode skills: %w", err)
	}
	return string(b), nil
}
