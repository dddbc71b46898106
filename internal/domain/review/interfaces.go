package review

import (
	"context"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/notification"
)

// Repository provides persistence for reviews.
type Repository interface {
	// Create inserts a review. A second review by the same reviewer on the
	// same project yields repository.ErrConflict.
	Create(ctx context.Context, r *Review) error
	ListForReviewee(ctx context.Context, userID string) ([]Review, error)
}

// ContractReader looks up contracts.
type ContractReader interface {
	Get(ctx context.Context, id string) (*contract.Contract, error)
}

// Notifier receives side-effect events.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}
