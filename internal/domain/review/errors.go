package review

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrContractNotFound indicates the reviewed contract doesn't exist.
	ErrContractNotFound = fmt.Errorf("contract not found: %w", domain.ErrNotFound)
	// ErrInvalidRating indicates a rating outside 1..5.
	ErrInvalidRating = fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrInvalidInput)
	// ErrNotParty indicates the reviewer is not on the contract.
	ErrNotParty = fmt.Errorf("not a party to the contract: %w", domain.ErrForbidden)
	// ErrNotCompleted indicates the contract has not been completed.
	ErrNotCompleted = fmt.Errorf("contract is not completed: %w", domain.ErrInvalidState)
	// ErrAlreadyReviewed indicates the reviewer already reviewed this project.
	ErrAlreadyReviewed = fmt.Errorf("review already submitted: %w", domain.ErrConflict)
)
