package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// Service handles reviews.
type Service struct {
	repo      Repository
	contracts ContractReader
	notifier  Notifier
	logger    *slog.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, contracts ContractReader, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, contracts: contracts, notifier: notifier, logger: logger}
}

// CreateRequest defines review inputs.
type CreateRequest struct {
	Rating  int
	Comment string
}

// Create records the caller's review of the other party on a completed
// contract.
func (s *Service) Create(ctx context.Context, caller user.Principal, contractID string, req CreateRequest) (*Review, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, ErrInvalidRating
	}

	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	if !c.IsParty(caller.UserID) {
		return nil, ErrNotParty
	}
	if c.Status != contract.StatusCompleted {
		return nil, ErrNotCompleted
	}

	reviewee := c.ClientID
	if caller.UserID == c.ClientID {
		reviewee = c.FreelancerID
	}

	r := &Review{
		ID:         uuid.NewString(),
		ProjectID:  c.ProjectID,
		ReviewerID: caller.UserID,
		RevieweeID: reviewee,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("creating review: %w", err)
	}

	s.logger.Info("review created", "review_id", r.ID, "project_id", r.ProjectID, "rating", r.Rating)
	if s.notifier != nil {
		s.notifier.Notify(ctx, reviewee, notification.TypeNewReview,
			fmt.Sprintf("You received a %d-star review for project %q", r.Rating, c.ProjectTitle))
	}
	return r, nil
}

// ListForUser returns the reviews a user received with their average.
func (s *Service) ListForUser(ctx context.Context, userID string) (*Profile, error) {
	reviews, err := s.repo.ListForReviewee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	return &Profile{
		AverageRating: Average(reviews),
		TotalReviews:  len(reviews),
		Reviews:       reviews,
	}, nil
}
