package milestone

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

const maxAttachmentLen = 255

// Service tracks milestone progress for contracted projects.
type Service struct {
	repo      Repository
	projects  ProjectReader
	contracts ContractReader
	notifier  Notifier
	logger    *slog.Logger
}

// NewService creates a new milestone service.
func NewService(repo Repository, projects ProjectReader, contracts ContractReader, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, projects: projects, contracts: contracts, notifier: notifier, logger: logger}
}

// UpdateRequest carries the fields of a milestone edit.
type UpdateRequest = Change

// AddUpdateRequest defines a progress note. When Apply is set the note's
// progress is also applied to the milestone in the same transaction.
type AddUpdateRequest struct {
	Content       string
	Progress      *int
	AttachmentURL string
	Apply         bool
}

// Initialize creates the fixed five-stage sequence for a project. The
// project's client or its contracted freelancer may call it once.
func (s *Service) Initialize(ctx context.Context, caller user.Principal, projectID string) ([]Milestone, error) {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	if proj.ClientID != caller.UserID {
		c, err := s.contractOf(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.FreelancerID != caller.UserID {
			return nil, ErrNotParty
		}
	}

	now := time.Now().UTC()
	batch := make([]Milestone, 0, len(stages))
	for i, st := range stages {
		batch = append(batch, Milestone{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Name:        st.name,
			Description: st.description,
			Status:      StatusPending,
			Progress:    0,
			Order:       i + 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.Initialize(ctx, projectID, batch); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyInitialized
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("initializing milestones: %w", err)
	}

	s.logger.Info("milestones initialized", "project_id", projectID, "count", len(batch))
	return batch, nil
}

// Update edits a milestone. Only the assigned freelancer of an active
// contract may call it.
func (s *Service) Update(ctx context.Context, caller user.Principal, id string, req UpdateRequest) (*Milestone, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.authorizeWriter(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	w, err := s.repo.Mutate(ctx, id, func(m *Milestone, locked *contract.Contract) (*Write, error) {
		if err := checkWriter(locked, caller); err != nil {
			return nil, err
		}
		if err := Apply(m, req, time.Now().UTC()); err != nil {
			return nil, err
		}
		return &Write{Milestone: m}, nil
	})
	if err != nil {
		return nil, s.translate(err, "updating milestone")
	}

	m := w.Milestone
	s.logger.Info("milestone updated", "milestone_id", m.ID, "status", m.Status, "progress", m.Progress)
	s.notify(ctx, c.ClientID, notification.TypeMilestoneUpdate,
		fmt.Sprintf("Milestone %q updated to %d%% in project %q", m.Name, m.Progress, c.ProjectTitle))
	return m, nil
}

// AddUpdate appends a progress note to a milestone. The milestone itself
// is untouched unless req.Apply is set, in which case the note's progress
// goes through Apply in the same transaction.
func (s *Service) AddUpdate(ctx context.Context, caller user.Principal, id string, req AddUpdateRequest) (*Update, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || len(req.AttachmentURL) > maxAttachmentLen {
		return nil, ErrInvalidInput
	}
	if req.Apply && req.Progress == nil {
		return nil, ErrInvalidInput
	}
	var progress *int
	if req.Progress != nil {
		p := clamp(*req.Progress)
		progress = &p
	}

	c, err := s.authorizeWriter(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var name string
	w, err := s.repo.Mutate(ctx, id, func(m *Milestone, locked *contract.Contract) (*Write, error) {
		if err := checkWriter(locked, caller); err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		name = m.Name
		w := &Write{Update: &Update{
			ID:            uuid.NewString(),
			MilestoneID:   m.ID,
			UserID:        caller.UserID,
			Content:       content,
			Progress:      progress,
			AttachmentURL: strings.TrimSpace(req.AttachmentURL),
			CreatedAt:     now,
		}}
		if req.Apply {
			if err := Apply(m, Change{Progress: progress}, now); err != nil {
				return nil, err
			}
			w.Milestone = m
		}
		return w, nil
	})
	if err != nil {
		return nil, s.translate(err, "adding milestone update")
	}

	s.logger.Info("milestone update added", "milestone_id", id, "update_id", w.Update.ID, "applied", req.Apply)
	s.notify(ctx, c.ClientID, notification.TypeMilestoneUpdate,
		fmt.Sprintf("New update on %q in project %q", name, c.ProjectTitle))
	return w.Update, nil
}

// List returns a project's milestones in order. Readers are the project's
// client and its contracted freelancer.
func (s *Service) List(ctx context.Context, caller user.Principal, projectID string) ([]Milestone, error) {
	if err := s.authorizeReader(ctx, caller, projectID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, projectID)
}

// ListUpdates returns a milestone's updates newest first.
func (s *Service) ListUpdates(ctx context.Context, caller user.Principal, id string) ([]Update, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReader(ctx, caller, m.ProjectID); err != nil {
		return nil, err
	}
	return s.repo.ListUpdates(ctx, id)
}

func (s *Service) authorizeWriter(ctx context.Context, caller user.Principal, id string) (*contract.Contract, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.contractOf(ctx, m.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := checkWriter(c, caller); err != nil {
		return nil, err
	}
	return c, nil
}

// checkWriter runs before the transaction for early rejection and again
// on the contract read under lock, which is the authoritative check.
func checkWriter(c *contract.Contract, caller user.Principal) error {
	if c == nil || c.FreelancerID != caller.UserID {
		return ErrNotAssigned
	}
	if c.Status != contract.StatusActive {
		return ErrContractInactive
	}
	return nil
}

func (s *Service) authorizeReader(ctx context.Context, caller user.Principal, projectID string) error {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("getting project: %w", err)
	}
	if proj.ClientID == caller.UserID {
		return nil
	}
	c, err := s.contractOf(ctx, projectID)
	if err != nil {
		return err
	}
	if c == nil || c.FreelancerID != caller.UserID {
		return ErrNotParty
	}
	return nil
}

// contractOf returns nil when the project has no contract yet.
func (s *Service) contractOf(ctx context.Context, projectID string) (*contract.Contract, error) {
	c, err := s.contracts.GetByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return c, nil
}

func (s *Service) load(ctx context.Context, id string) (*Milestone, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	return m, nil
}

func (s *Service) translate(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrMilestoneNotFound
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrNotAssigned),
		errors.Is(err, ErrContractInactive):
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (s *Service) notify(ctx context.Context, userID string, typ notification.Type, content string) {
	if s.notifier == nil || userID == "" {
		return
	}
	s.notifier.Notify(ctx, userID, typ, content)
}
