package contract

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrContractNotFound indicates the contract doesn't exist.
	ErrContractNotFound = fmt.Errorf("contract not found: %w", domain.ErrNotFound)
	// ErrNotParty indicates the caller is neither client nor freelancer.
	ErrNotParty = fmt.Errorf("not a party to the contract: %w", domain.ErrForbidden)
	// ErrClientOnly indicates the operation is reserved to the project client.
	ErrClientOnly = fmt.Errorf("only the client can perform this action: %w", domain.ErrForbidden)
	// ErrInvalidAmount indicates a non-positive or over-precise amount.
	ErrInvalidAmount = fmt.Errorf("invalid payment amount: %w", domain.ErrInvalidInput)
	// ErrInvalidInput indicates invalid payment fields.
	ErrInvalidInput = fmt.Errorf("invalid payment input: %w", domain.ErrInvalidInput)
	// ErrExceedsBalance indicates the payment is larger than the remaining amount.
	ErrExceedsBalance = fmt.Errorf("payment amount exceeds remaining balance: %w", domain.ErrInvalidState)
	// ErrNotActive indicates the contract already reached a terminal state.
	ErrNotActive = fmt.Errorf("contract is not active: %w", domain.ErrInvalidState)
	// ErrCancelled indicates payments against a cancelled contract.
	ErrCancelled = fmt.Errorf("contract is cancelled: %w", domain.ErrInvalidState)
	// ErrOutstandingBalance indicates completion was refused while money is owed.
	ErrOutstandingBalance = fmt.Errorf("contract has an outstanding balance: %w", domain.ErrInvalidState)
)
