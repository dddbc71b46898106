package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title       string
	Description string
	Budget      decimal.Decimal
	Skills      []string
	Duration    string
}

// UpdateRequest defines editable project fields. Nil fields are left as is.
type UpdateRequest struct {
	Title       *string
	Description *string
	Budget      *decimal.Decimal
	Skills      []string
	Duration    *string
}

// Create posts a new open project owned by the calling client.
func (s *Service) Create(ctx context.Context, caller user.Principal, req CreateRequest) (*Project, error) {
	if !caller.IsClient() {
		return nil, ErrClientsOnly
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrInvalidInput
	}
	if !domain.ValidAmount(req.Budget) {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	proj := &Project{
		ID:          uuid.NewString(),
		ClientID:    caller.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		Skills:      normalizeSkills(req.Skills),
		Duration:    req.Duration,
		Status:      StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", proj.ID, "client_id", proj.ClientID)
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns projects newest first. Without a client filter only open
// projects are listed unless a status is given; with a client filter every
// status is included unless one is given.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, ErrInvalidInput
	}
	if opts.ClientID == "" && opts.Status == "" {
		opts.Status = StatusOpen
	}
	return s.repo.List(ctx, opts)
}

// Update edits an open project owned by the caller.
func (s *Service) Update(ctx context.Context, caller user.Principal, id string, req UpdateRequest) (*Project, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrInvalidInput
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, ErrInvalidInput
	}
	if req.Budget != nil && !domain.ValidAmount(*req.Budget) {
		return nil, ErrInvalidInput
	}

	return s.mutate(ctx, id, func(proj *Project) error {
		if proj.ClientID != caller.UserID {
			return ErrNotOwner
		}
		if proj.Status != StatusOpen {
			return ErrNotOpen
		}
		if req.Title != nil {
			proj.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			proj.Description = *req.Description
		}
		if req.Budget != nil {
			proj.Budget = *req.Budget
		}
		if req.Skills != nil {
			proj.Skills = normalizeSkills(req.Skills)
		}
		if req.Duration != nil {
			proj.Duration = *req.Duration
		}
		proj.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Cancel withdraws an open project owned by the caller.
func (s *Service) Cancel(ctx context.Context, caller user.Principal, id string) (*Project, error) {
	proj, err := s.mutate(ctx, id, func(proj *Project) error {
		if proj.ClientID != caller.UserID {
			return ErrNotOwner
		}
		if proj.Status != StatusOpen {
			return ErrNotOpen
		}
		proj.Status = StatusCancelled
		proj.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("project cancelled", "project_id", proj.ID)
	return proj, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Project) error) (*Project, error) {
	proj, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		if errors.Is(err, ErrNotOwner) || errors.Is(err, ErrNotOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
