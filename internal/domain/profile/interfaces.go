package profile

import (
	"context"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// Repository provides persistence for profiles.
type Repository interface {
	// Get returns repository.ErrNotFound when the user never saved a profile.
	Get(ctx context.Context, userID string) (*Profile, error)
	// Upsert locks the owner's profile row, hands fn the stored profile (an
	// empty one when none exists) and writes the result back.
	Upsert(ctx context.Context, userID string, fn func(p *Profile) error) (*Profile, error)
	// ListFreelancers returns every freelancer account with its profile and
	// review totals, ordered by name.
	ListFreelancers(ctx context.Context) ([]Listing, error)
}

// UserReader looks up accounts.
type UserReader interface {
	Get(ctx context.Context, id string) (*user.User, error)
}
