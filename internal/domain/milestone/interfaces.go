package milestone

import (
	"context"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
)

// Repository provides persistence for milestones and their updates.
type Repository interface {
	// Initialize locks the project and inserts batch. It returns
	// repository.ErrConflict when the project already has milestones.
	Initialize(ctx context.Context, projectID string, batch []Milestone) error
	Get(ctx context.Context, id string) (*Milestone, error)
	// List returns the project's milestones by order with update counts.
	List(ctx context.Context, projectID string) ([]Milestone, error)
	// ListUpdates returns a milestone's updates newest first.
	ListUpdates(ctx context.Context, milestoneID string) ([]Update, error)
	// Mutate locks the project's contract (when there is one) and then the
	// milestone, hands both to fn, and persists the Write fn returns in the
	// same transaction. c is nil when the project has no contract.
	Mutate(ctx context.Context, id string, fn func(m *Milestone, c *contract.Contract) (*Write, error)) (*Write, error)
}

// ProjectReader looks up projects for authorization.
type ProjectReader interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ContractReader looks up the contract of a project.
type ContractReader interface {
	GetByProject(ctx context.Context, projectID string) (*contract.Contract, error)
}

// Notifier receives side-effect events.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}
