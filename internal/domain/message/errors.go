package message

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrInvalidInput indicates a missing receiver or an empty or oversized
	// body.
	ErrInvalidInput = fmt.Errorf("invalid message input: %w", domain.ErrInvalidInput)
	// ErrSelfMessage indicates a user messaging themselves.
	ErrSelfMessage = fmt.Errorf("cannot message yourself: %w", domain.ErrInvalidInput)
	// ErrNoMessageIDs indicates a mark-read request without ids.
	ErrNoMessageIDs = fmt.Errorf("no message ids provided: %w", domain.ErrInvalidInput)
	// ErrUserNotFound indicates the other participant doesn't exist.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project not found: %w", domain.ErrNotFound)
)
