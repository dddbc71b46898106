package profile

import (
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrUserNotFound indicates the profile owner doesn't exist.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrInvalidRate indicates a negative hourly rate or one with more than
	// two decimal places.
	ErrInvalidRate = fmt.Errorf("invalid hourly rate: %w", domain.ErrInvalidInput)
	// ErrInvalidPortfolioURL indicates a portfolio link that isn't http(s).
	ErrInvalidPortfolioURL = fmt.Errorf("invalid portfolio url: %w", domain.ErrInvalidInput)
)
