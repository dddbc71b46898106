package notification

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrNotificationNotFound indicates the notification doesn't exist.
	ErrNotificationNotFound = fmt.Errorf("notification not found: %w", domain.ErrNotFound)
	// ErrNotRecipient indicates the caller is not the notification's recipient.
	ErrNotRecipient = fmt.Errorf("not the notification recipient: %w", domain.ErrForbidden)
)
