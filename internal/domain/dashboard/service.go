package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/user"
)

// ErrUnknownRole indicates a caller whose role has no dashboard.
var ErrUnknownRole = fmt.Errorf("no dashboard for role: %w", domain.ErrForbidden)

// Service serves role-specific dashboard stats.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the caller's dashboard.
func (s *Service) Get(ctx context.Context, caller user.Principal) (*Dashboard, error) {
	d := &Dashboard{Role: caller.Role}
	switch {
	case caller.IsClient():
		stats, err := s.repo.ClientStats(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading client stats: %w", err)
		}
		d.Client = stats
	case caller.IsFreelancer():
		stats, err := s.repo.FreelancerStats(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading freelancer stats: %w", err)
		}
		d.Freelancer = stats
	default:
		return nil, ErrUnknownRole
	}
	return d, nil
}
