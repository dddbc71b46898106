package proposal

import (
	"context"

	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
)

// Repository provides persistence for proposals.
type Repository interface {
	// Submit locks the project, hands it to fn, and inserts the proposal fn
	// returns. A duplicate (project, freelancer) pair yields
	// repository.ErrConflict.
	Submit(ctx context.Context, projectID string, fn func(proj *project.Project) (*Proposal, error)) (*Proposal, error)
	Get(ctx context.Context, id string) (*Proposal, error)
	GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*Proposal, error)
	ListForProject(ctx context.Context, projectID string) ([]Proposal, error)
	ListForFreelancer(ctx context.Context, freelancerID string) ([]Proposal, error)
	// Decide locks the proposal's project, hands fn the proposal, the
	// project, and the other pending proposals on it, then persists the
	// returned Decision atomically.
	Decide(ctx context.Context, id string, fn func(p *Proposal, proj *project.Project, pending []Proposal) (*Decision, error)) (*Decision, error)
}

// ProjectReader looks up projects for authorization.
type ProjectReader interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// Notifier receives side-effect events.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}
