package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	// Update applies fn to the locked project row and persists the result
	// in one transaction. An error from fn aborts the update.
	Update(ctx context.Context, id string, fn func(proj *Project) error) (*Project, error)
}
