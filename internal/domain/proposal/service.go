package proposal

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
	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// Service runs the proposal workflow.
type Service struct {
	repo     Repository
	projects ProjectReader
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new proposal service.
func NewService(repo Repository, projects ProjectReader, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, projects: projects, notifier: notifier, logger: logger}
}

// SubmitRequest defines proposal inputs.
type SubmitRequest struct {
	ProjectID    string
	CoverLetter  string
	Amount       decimal.Decimal
	DeliveryTime string
}

// AcceptResult reports the outcome of an acceptance.
type AcceptResult struct {
	Proposal *Proposal
	Contract *contract.Contract
	Rejected []Proposal
}

// Submit places a pending bid on an open project.
func (s *Service) Submit(ctx context.Context, caller user.Principal, req SubmitRequest) (*Proposal, error) {
	if !caller.IsFreelancer() {
		return nil, ErrFreelancersOnly
	}
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.CoverLetter) == "" {
		return nil, ErrInvalidInput
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, ErrInvalidInput
	}

	var title, clientID string
	p, err := s.repo.Submit(ctx, req.ProjectID, func(proj *project.Project) (*Proposal, error) {
		if proj.ClientID == caller.UserID {
			return nil, ErrOwnProject
		}
		if proj.Status != project.StatusOpen {
			return nil, ErrProjectNotOpen
		}
		title, clientID = proj.Title, proj.ClientID
		return &Proposal{
			ID:           uuid.NewString(),
			ProjectID:    proj.ID,
			FreelancerID: caller.UserID,
			CoverLetter:  req.CoverLetter,
			Amount:       req.Amount,
			DeliveryTime: strings.TrimSpace(req.DeliveryTime),
			Status:       StatusPending,
			CreatedAt:    time.Now().UTC(),
		}, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProjectNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrDuplicate
		case errors.Is(err, ErrOwnProject), errors.Is(err, ErrProjectNotOpen):
			return nil, err
		}
		return nil, fmt.Errorf("submitting proposal: %w", err)
	}

	s.logger.Info("proposal submitted", "proposal_id", p.ID, "project_id", p.ProjectID, "freelancer_id", p.FreelancerID)
	s.notify(ctx, clientID, notification.TypeNewProposal, fmt.Sprintf("New proposal received for %s", title))
	return p, nil
}

// Accept awards the project to the proposal's freelancer. In one
// transaction the proposal is accepted, the project moves to in_progress,
// the contract is created, and every other pending proposal is rejected.
func (s *Service) Accept(ctx context.Context, caller user.Principal, id string) (*AcceptResult, error) {
	var title string
	d, err := s.repo.Decide(ctx, id, func(p *Proposal, proj *project.Project, pending []Proposal) (*Decision, error) {
		if proj.ClientID != caller.UserID {
			return nil, ErrNotProjectClient
		}
		if p.Status != StatusPending {
			return nil, ErrAlreadyDecided
		}
		if proj.Status != project.StatusOpen {
			return nil, ErrProjectNotOpen
		}
		title = proj.Title

		p.Status = StatusAccepted
		rejected := make([]Proposal, 0, len(pending))
		for _, other := range pending {
			if other.ID == p.ID || other.Status != StatusPending {
				continue
			}
			other.Status = StatusRejected
			rejected = append(rejected, other)
		}

		return &Decision{
			Proposal:      p,
			ProjectStatus: project.StatusInProgress,
			Contract: &contract.Contract{
				ID:           uuid.NewString(),
				ProjectID:    proj.ID,
				ProposalID:   p.ID,
				FreelancerID: p.FreelancerID,
				Amount:       p.Amount,
				Status:       contract.StatusActive,
				StartDate:    time.Now().UTC(),
				ClientID:     proj.ClientID,
				ProjectTitle: proj.Title,
			},
			Rejected: rejected,
		}, nil
	})
	if err != nil {
		return nil, s.translate(err, "accepting proposal")
	}

	s.logger.Info("proposal accepted",
		"proposal_id", d.Proposal.ID,
		"project_id", d.Proposal.ProjectID,
		"contract_id", d.Contract.ID,
		"auto_rejected", len(d.Rejected),
	)
	s.notify(ctx, d.Proposal.FreelancerID, notification.TypeProposalAccepted,
		fmt.Sprintf("Your proposal for %q was accepted", title))
	for _, r := range d.Rejected {
		s.notify(ctx, r.FreelancerID, notification.TypeProposalRejected,
			fmt.Sprintf("Your proposal for %q was not selected", title))
	}

	return &AcceptResult{Proposal: d.Proposal, Contract: d.Contract, Rejected: d.Rejected}, nil
}

// Reject declines a pending proposal. Nothing else changes.
func (s *Service) Reject(ctx context.Context, caller user.Principal, id string) (*Proposal, error) {
	var title string
	d, err := s.repo.Decide(ctx, id, func(p *Proposal, proj *project.Project, _ []Proposal) (*Decision, error) {
		if proj.ClientID != caller.UserID {
			return nil, ErrNotProjectClient
		}
		if p.Status != StatusPending {
			return nil, ErrAlreadyDecided
		}
		title = proj.Title
		p.Status = StatusRejected
		return &Decision{Proposal: p}, nil
	})
	if err != nil {
		return nil, s.translate(err, "rejecting proposal")
	}

	s.logger.Info("proposal rejected", "proposal_id", d.Proposal.ID)
	s.notify(ctx, d.Proposal.FreelancerID, notification.TypeProposalRejected,
		fmt.Sprintf("Your proposal for %q was not selected", title))
	return d.Proposal, nil
}

// ListForProject returns every proposal on a project, newest first. Only
// the project's client may list them.
func (s *Service) ListForProject(ctx context.Context, caller user.Principal, projectID string) ([]Proposal, error) {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if proj.ClientID != caller.UserID {
		return nil, ErrNotProjectClient
	}
	return s.repo.ListForProject(ctx, projectID)
}

// ListMine returns the calling freelancer's proposals, newest first.
func (s *Service) ListMine(ctx context.Context, caller user.Principal) ([]Proposal, error) {
	if !caller.IsFreelancer() {
		return nil, ErrFreelancersOnly
	}
	return s.repo.ListForFreelancer(ctx, caller.UserID)
}

// GetMine returns the calling freelancer's proposal on a project.
func (s *Service) GetMine(ctx context.Context, caller user.Principal, projectID string) (*Proposal, error) {
	if !caller.IsFreelancer() {
		return nil, ErrFreelancersOnly
	}
	p, err := s.repo.GetByProjectAndFreelancer(ctx, projectID, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("getting proposal: %w", err)
	}
	return p, nil
}

func (s *Service) translate(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProposalNotFound
	case errors.Is(err, repository.ErrConflict):
		// A concurrent acceptance won the partial unique index.
		return ErrAlreadyDecided
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrInvalidState):
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
