package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// Service handles profiles and the freelancer directory.
type Service struct {
	repo   Repository
	users  UserReader
	logger *slog.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, users UserReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, users: users, logger: logger}
}

// UpdateRequest defines a partial profile update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Bio          *string
	Skills       []string
	HourlyRate   *decimal.Decimal
	PortfolioURL *string
	Location     *string
}

// Get returns a user together with their profile. Users who never saved a
// profile get an empty one.
func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	p, err := s.repo.Get(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = &Profile{UserID: userID, Skills: []string{}}
	case err != nil:
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return &View{User: u, Profile: p}, nil
}

// Update applies req to the caller's own profile, creating it on first use.
func (s *Service) Update(ctx context.Context, caller user.Principal, req UpdateRequest) (*Profile, error) {
	if req.HourlyRate != nil {
		rate := *req.HourlyRate
		if rate.IsNegative() || !rate.Equal(rate.Round(domain.MoneyPlaces)) {
			return nil, ErrInvalidRate
		}
	}
	if req.PortfolioURL != nil && *req.PortfolioURL != "" && !validURL(*req.PortfolioURL) {
		return nil, ErrInvalidPortfolioURL
	}

	p, err := s.repo.Upsert(ctx, caller.UserID, func(p *Profile) error {
		if req.Bio != nil {
			p.Bio = strings.TrimSpace(*req.Bio)
		}
		if req.Skills != nil {
			p.Skills = cleanSkills(req.Skills)
		}
		if req.HourlyRate != nil {
			p.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
		}
		if req.PortfolioURL != nil {
			p.PortfolioURL = strings.TrimSpace(*req.PortfolioURL)
		}
		if req.Location != nil {
			p.Location = strings.TrimSpace(*req.Location)
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", caller.UserID)
	return p, nil
}

// ListFreelancers returns the freelancer directory. Unreviewed freelancers
// are rated DefaultRating.
func (s *Service) ListFreelancers(ctx context.Context) ([]Freelancer, error) {
	listings, err := s.repo.ListFreelancers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing freelancers: %w", err)
	}

	out := make([]Freelancer, 0, len(listings))
	for _, l := range listings {
		skills := l.Profile.Skills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, Freelancer{
			ID:           l.User.ID,
			Name:         l.User.Name,
			Email:        l.User.Email,
			Bio:          l.Profile.Bio,
			Skills:       skills,
			HourlyRate:   l.Profile.HourlyRate,
			PortfolioURL: l.Profile.PortfolioURL,
			Location:     l.Profile.Location,
			Rating:       Rating(l.RatingTotal, l.ReviewsCount),
			ReviewsCount: l.ReviewsCount,
		})
	}
	return out, nil
}

func validURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
