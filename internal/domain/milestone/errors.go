package milestone

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrMilestoneNotFound indicates the milestone doesn't exist.
	ErrMilestoneNotFound = fmt.Errorf("milestone not found: %w", domain.ErrNotFound)
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project not found: %w", domain.ErrNotFound)
	// ErrInvalidInput indicates invalid milestone input.
	ErrInvalidInput = fmt.Errorf("invalid milestone input: %w", domain.ErrInvalidInput)
	// ErrInvalidStatus indicates an unknown milestone status.
	ErrInvalidStatus = fmt.Errorf("invalid milestone status: %w", domain.ErrInvalidInput)
	// ErrNotParty indicates the caller is neither client nor assigned freelancer.
	ErrNotParty = fmt.Errorf("not a party to the project: %w", domain.ErrForbidden)
	// ErrNotAssigned indicates the caller is not the assigned freelancer.
	ErrNotAssigned = fmt.Errorf("only the assigned freelancer can update milestones: %w", domain.ErrForbidden)
	// ErrContractInactive indicates the project's contract is not active.
	ErrContractInactive = fmt.Errorf("contract is not active: %w", domain.ErrInvalidState)
	// ErrAlreadyInitialized indicates milestones already exist for the project.
	ErrAlreadyInitialized = fmt.Errorf("milestones already exist for this project: %w", domain.ErrConflict)
)
