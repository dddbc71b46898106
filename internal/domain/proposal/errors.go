package proposal

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrProposalNotFound indicates the proposal doesn't exist.
	ErrProposalNotFound = fmt.Errorf("proposal not found: %w", domain.ErrNotFound)
	// ErrProjectNotFound indicates the target project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project not found: %w", domain.ErrNotFound)
	// ErrInvalidInput indicates invalid proposal input.
	ErrInvalidInput = fmt.Errorf("invalid proposal input: %w", domain.ErrInvalidInput)
	// ErrFreelancersOnly indicates a non-freelancer tried to bid.
	ErrFreelancersOnly = fmt.Errorf("only freelancers can submit proposals: %w", domain.ErrForbidden)
	// ErrNotProjectClient indicates the caller is not the project's client.
	ErrNotProjectClient = fmt.Errorf("not the project client: %w", domain.ErrForbidden)
	// ErrOwnProject indicates a user bidding on a project they posted.
	ErrOwnProject = fmt.Errorf("cannot bid on your own project: %w", domain.ErrInvalidState)
	// ErrProjectNotOpen indicates the project no longer accepts proposals.
	ErrProjectNotOpen = fmt.Errorf("project is not open: %w", domain.ErrInvalidState)
	// ErrAlreadyDecided indicates the proposal is no longer pending.
	ErrAlreadyDecided = fmt.Errorf("proposal already decided: %w", domain.ErrInvalidState)
	// ErrDuplicate indicates the freelancer already bid on the project.
	ErrDuplicate = fmt.Errorf("proposal already submitted for this project: %w", domain.ErrConflict)
)
