package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/dashboard"
	"github.com/rpggio/gigboard/internal/domain/message"
	"github.com/rpggio/gigboard/internal/domain/milestone"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/profile"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/proposal"
	"github.com/rpggio/gigboard/internal/domain/review"
	"github.com/rpggio/gigboard/internal/domain/user"
)

// Callback-style methods take their fixtures from the expectation and then
// run the domain callback against copies of them, the way the store does
// inside its transaction.

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// TokenIssuer is a mock for user.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(p user.Principal) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, id string, fn func(*project.Project) error) (*project.Project, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	proj := *args.Get(0).(*project.Project)
	if err := fn(&proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// ProposalRepository is a mock for proposal.Repository.
type ProposalRepository struct {
	mock.Mock
}

func (m *ProposalRepository) Submit(ctx context.Context, projectID string, fn func(*project.Project) (*proposal.Proposal, error)) (*proposal.Proposal, error) {
	args := m.Called(ctx, projectID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	proj := *args.Get(0).(*project.Project)
	return fn(&proj)
}

func (m *ProposalRepository) Get(ctx context.Context, id string) (*proposal.Proposal, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*proposal.Proposal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProposalRepository) GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*proposal.Proposal, error) {
	args := m.Called(ctx, projectID, freelancerID)
	if p, ok := args.Get(0).(*proposal.Proposal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProposalRepository) ListForProject(ctx context.Context, projectID string) ([]proposal.Proposal, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]proposal.Proposal); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProposalRepository) ListForFreelancer(ctx context.Context, freelancerID string) ([]proposal.Proposal, error) {
	args := m.Called(ctx, freelancerID)
	if list, ok := args.Get(0).([]proposal.Proposal); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProposalRepository) Decide(ctx context.Context, id string, fn func(*proposal.Proposal, *project.Project, []proposal.Proposal) (*proposal.Decision, error)) (*proposal.Decision, error) {
	args := m.Called(ctx, id)
	if err := args.Error(3); err != nil {
		return nil, err
	}
	p := *args.Get(0).(*proposal.Proposal)
	proj := *args.Get(1).(*project.Project)
	var pending []proposal.Proposal
	if list, ok := args.Get(2).([]proposal.Proposal); ok {
		pending = append(pending, list...)
	}
	return fn(&p, &proj, pending)
}

// ContractRepository is a mock for contract.Repository.
type ContractRepository struct {
	mock.Mock
}

func (m *ContractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contract.Contract); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) GetByProject(ctx context.Context, projectID string) (*contract.Contract, error) {
	args := m.Called(ctx, projectID)
	if c, ok := args.Get(0).(*contract.Contract); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) ListForFreelancer(ctx context.Context, freelancerID string) ([]contract.Contract, error) {
	args := m.Called(ctx, freelancerID)
	if list, ok := args.Get(0).([]contract.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) ListForClient(ctx context.Context, clientID string) ([]contract.Contract, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]contract.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) ListPayments(ctx context.Context, contractID string) ([]contract.Payment, error) {
	args := m.Called(ctx, contractID)
	if list, ok := args.Get(0).([]contract.Payment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContractRepository) AddPayment(ctx context.Context, contractID string, fn func(*contract.Contract, []contract.Payment) (*contract.Payment, error)) (*contract.Payment, error) {
	args := m.Called(ctx, contractID)
	if err := args.Error(2); err != nil {
		return nil, err
	}
	c := *args.Get(0).(*contract.Contract)
	var payments []contract.Payment
	if list, ok := args.Get(1).([]contract.Payment); ok {
		payments = append(payments, list...)
	}
	return fn(&c, payments)
}

func (m *ContractRepository) Transition(ctx context.Context, contractID string, fn func(*contract.Contract, []contract.Payment) (project.Status, error)) (*contract.Contract, error) {
	args := m.Called(ctx, contractID)
	if err := args.Error(2); err != nil {
		return nil, err
	}
	c := *args.Get(0).(*contract.Contract)
	var payments []contract.Payment
	if list, ok := args.Get(1).([]contract.Payment); ok {
		payments = append(payments, list...)
	}
	if _, err := fn(&c, payments); err != nil {
		return nil, err
	}
	return &c, nil
}

// MilestoneRepository is a mock for milestone.Repository.
type MilestoneRepository struct {
	mock.Mock
}

func (m *MilestoneRepository) Initialize(ctx context.Context, projectID string, batch []milestone.Milestone) error {
	args := m.Called(ctx, projectID, batch)
	return args.Error(0)
}

func (m *MilestoneRepository) Get(ctx context.Context, id string) (*milestone.Milestone, error) {
	args := m.Called(ctx, id)
	if ms, ok := args.Get(0).(*milestone.Milestone); ok {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MilestoneRepository) List(ctx context.Context, projectID string) ([]milestone.Milestone, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]milestone.Milestone); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MilestoneRepository) ListUpdates(ctx context.Context, milestoneID string) ([]milestone.Update, error) {
	args := m.Called(ctx, milestoneID)
	if list, ok := args.Get(0).([]milestone.Update); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Mutate runs fn on copies of the milestone and contract returned by the
// configured call.
func (m *MilestoneRepository) Mutate(ctx context.Context, id string, fn func(*milestone.Milestone, *contract.Contract) (*milestone.Write, error)) (*milestone.Write, error) {
	args := m.Called(ctx, id)
	if err := args.Error(2); err != nil {
		return nil, err
	}
	ms := *args.Get(0).(*milestone.Milestone)
	var c *contract.Contract
	if locked, ok := args.Get(1).(*contract.Contract); ok && locked != nil {
		cp := *locked
		c = &cp
	}
	return fn(&ms, c)
}

// NotificationRepository is a mock for notification.Repository.
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*notification.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) List(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if list, ok := args.Get(0).([]notification.Notification); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Publisher is a mock for notification.Publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// Notifier is a mock for the domain Notifier interfaces.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, userID string, typ notification.Type, content string) {
	m.Called(ctx, userID, typ, content)
}

// ReviewRepository is a mock for review.Repository.
type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReviewRepository) ListForReviewee(ctx context.Context, userID string) ([]review.Review, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]review.Review); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProfileRepository is a mock for profile.Repository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*profile.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert runs fn on a copy of the configured profile, or on an empty one
// when the expectation returns nil.
func (m *ProfileRepository) Upsert(ctx context.Context, userID string, fn func(*profile.Profile) error) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	p := profile.Profile{UserID: userID, Skills: []string{}}
	if stored, ok := args.Get(0).(*profile.Profile); ok && stored != nil {
		p = *stored
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *ProfileRepository) ListFreelancers(ctx context.Context) ([]profile.Listing, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]profile.Listing); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MessageRepository is a mock for message.Repository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) Thread(ctx context.Context, a, b string) ([]message.Message, error) {
	args := m.Called(ctx, a, b)
	if list, ok := args.Get(0).([]message.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, receiverID string, ids []string, at time.Time) (int, error) {
	args := m.Called(ctx, receiverID, ids, at)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID string, at time.Time) (int, error) {
	args := m.Called(ctx, receiverID, senderID, at)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepository) History(ctx context.Context, userID string) ([]message.Entry, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]message.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DashboardRepository is a mock for dashboard.Repository.
type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) ClientStats(ctx context.Context, clientID string) (*dashboard.ClientStats, error) {
	args := m.Called(ctx, clientID)
	if s, ok := args.Get(0).(*dashboard.ClientStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) FreelancerStats(ctx context.Context, freelancerID string) (*dashboard.FreelancerStats, error) {
	args := m.Called(ctx, freelancerID)
	if s, ok := args.Get(0).(*dashboard.FreelancerStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
