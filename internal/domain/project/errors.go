package project

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project not found: %w", domain.ErrNotFound)
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = fmt.Errorf("invalid project input: %w", domain.ErrInvalidInput)
	// ErrClientsOnly indicates a non-client tried to post a project.
	ErrClientsOnly = fmt.Errorf("only clients can post projects: %w", domain.ErrForbidden)
	// ErrNotOwner indicates the caller does not own the project.
	ErrNotOwner = fmt.Errorf("not the project owner: %w", domain.ErrForbidden)
	// ErrNotOpen indicates the project can no longer be edited.
	ErrNotOpen = fmt.Errorf("project is not open: %w", domain.ErrInvalidState)
)
