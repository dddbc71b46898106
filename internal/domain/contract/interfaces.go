package contract

import (
	"context"

	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
)

// Repository provides persistence for contracts and their payments.
type Repository interface {
	Get(ctx context.Context, id string) (*Contract, error)
	GetByProject(ctx context.Context, projectID string) (*Contract, error)
	ListForFreelancer(ctx context.Context, freelancerID string) ([]Contract, error)
	ListForClient(ctx context.Context, clientID string) ([]Contract, error)
	// ListPayments returns the payment history newest first.
	ListPayments(ctx context.Context, contractID string) ([]Payment, error)
	// AddPayment locks the contract, hands fn the contract and its payment
	// history read inside the same transaction, and inserts the payment fn
	// returns. An error from fn aborts the transaction.
	AddPayment(ctx context.Context, contractID string, fn func(c *Contract, payments []Payment) (*Payment, error)) (*Payment, error)
	// Transition locks the contract, lets fn mutate its status and end date,
	// and persists them together with the returned project status.
	Transition(ctx context.Context, contractID string, fn func(c *Contract, payments []Payment) (project.Status, error)) (*Contract, error)
}

// Notifier receives side-effect events.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}
