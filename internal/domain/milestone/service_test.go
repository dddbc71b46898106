package milestone_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/milestone"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
	"github.com/rpggio/gigboard/internal/repository/mocks"
)

var (
	client     = user.Principal{UserID: "client1", Role: user.RoleClient}
	freelancer = user.Principal{UserID: "free1", Role: user.RoleFreelancer}
	stranger   = user.Principal{UserID: "free2", Role: user.RoleFreelancer}
)

type fixture struct {
	repo      *mocks.MilestoneRepository
	projects  *mocks.ProjectRepository
	contracts *mocks.ContractRepository
	notifier  *mocks.Notifier
	svc       *milestone.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mocks.MilestoneRepository{},
		projects:  &mocks.ProjectRepository{},
		contracts: &mocks.ContractRepository{},
		notifier:  &mocks.Notifier{},
	}
	f.svc = milestone.NewService(f.repo, f.projects, f.contracts, f.notifier, nil)
	return f
}

func activeContract() *contract.Contract {
	return &contract.Contract{
		ID:           "c1",
		ProjectID:    "p1",
		FreelancerID: freelancer.UserID,
		ClientID:     client.UserID,
		ProjectTitle: "Shop",
		Status:       contract.StatusActive,
	}
}

func design() *milestone.Milestone {
	return &milestone.Milestone{
		ID:        "m2",
		ProjectID: "p1",
		Name:      "Design",
		Status:    milestone.StatusPending,
		Order:     2,
	}
}

func TestMilestoneService_Initialize(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ClientID: client.UserID}, nil)
	f.repo.On("Initialize", ctx, "p1", mock.Anything).Return(nil).Once()
	f.repo.On("Initialize", ctx, "p1", mock.Anything).Return(repository.ErrConflict).Once()

	batch, err := f.svc.Initialize(ctx, client, "p1")
	require.NoError(t, err)
	require.Len(t, batch, 5)
	names := []string{"Planning", "Design", "Development", "Testing", "Deployment"}
	for i, m := range batch {
		require.Equal(t, names[i], m.Name)
		require.Equal(t, i+1, m.Order)
		require.Equal(t, milestone.StatusPending, m.Status)
		require.Zero(t, m.Progress)
	}

	_, err = f.svc.Initialize(ctx, client, "p1")
	require.ErrorIs(t, err, milestone.ErrAlreadyInitialized)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestMilestoneService_Initialize_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ClientID: client.UserID}, nil)
	f.projects.On("Get", ctx, "p2").Return(&project.Project{ID: "p2", ClientID: client.UserID}, nil)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)
	f.contracts.On("GetByProject", ctx, "p2").Return(nil, repository.ErrNotFound)
	f.repo.On("Initialize", ctx, "p1", mock.Anything).Return(nil)

	_, err := f.svc.Initialize(ctx, freelancer, "p1")
	require.NoError(t, err)

	_, err = f.svc.Initialize(ctx, stranger, "p1")
	require.ErrorIs(t, err, milestone.ErrNotParty)

	_, err = f.svc.Initialize(ctx, freelancer, "p2")
	require.ErrorIs(t, err, milestone.ErrNotParty)
}

func TestMilestoneService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.repo.On("Get", ctx, "m2").Return(design(), nil)
	f.repo.On("Mutate", ctx, "m2").Return(design(), activeContract(), nil)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)
	f.notifier.On("Notify", mock.Anything, client.UserID, notification.TypeMilestoneUpdate,
		`Milestone "Design" updated to 100% in project "Shop"`).Return()

	completed := milestone.StatusCompleted
	m, err := f.svc.Update(ctx, freelancer, "m2", milestone.UpdateRequest{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, 100, m.Progress)
	require.NotNil(t, m.CompletedAt)
	f.notifier.AssertExpectations(t)
}

func TestMilestoneService_Update_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	closed := activeContract()
	closed.ProjectID = "p2"
	closed.Status = contract.StatusCompleted
	other := design()
	other.ID = "m9"
	other.ProjectID = "p2"

	f.repo.On("Get", ctx, "m2").Return(design(), nil)
	f.repo.On("Get", ctx, "m9").Return(other, nil)
	f.repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)
	f.contracts.On("GetByProject", ctx, "p2").Return(closed, nil)

	progress := 50
	req := milestone.UpdateRequest{Progress: &progress}

	_, err := f.svc.Update(ctx, client, "m2", req)
	require.ErrorIs(t, err, milestone.ErrNotAssigned)

	_, err = f.svc.Update(ctx, freelancer, "m9", req)
	require.ErrorIs(t, err, milestone.ErrContractInactive)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.svc.Update(ctx, freelancer, "missing", req)
	require.ErrorIs(t, err, milestone.ErrMilestoneNotFound)

	bogus := milestone.Status("blocked")
	_, err = f.svc.Update(ctx, freelancer, "m2", milestone.UpdateRequest{Status: &bogus})
	require.ErrorIs(t, err, milestone.ErrInvalidStatus)

	f.repo.AssertNotCalled(t, "Mutate", mock.Anything, mock.Anything)
}

func TestMilestoneService_Update_RechecksContractUnderLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// The contract is active when first read but completed by the time the
	// milestone transaction holds the lock.
	completed := activeContract()
	completed.Status = contract.StatusCompleted

	f.repo.On("Get", ctx, "m2").Return(design(), nil)
	f.repo.On("Mutate", ctx, "m2").Return(design(), completed, nil)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)

	progress := 60
	_, err := f.svc.Update(ctx, freelancer, "m2", milestone.UpdateRequest{Progress: &progress})
	require.ErrorIs(t, err, milestone.ErrContractInactive)

	_, err = f.svc.AddUpdate(ctx, freelancer, "m2", milestone.AddUpdateRequest{Content: "late note"})
	require.ErrorIs(t, err, milestone.ErrContractInactive)

	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMilestoneService_AddUpdate_AppendOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.repo.On("Get", ctx, "m2").Return(design(), nil)
	f.repo.On("Mutate", ctx, "m2").Return(design(), activeContract(), nil)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)
	f.notifier.On("Notify", mock.Anything, client.UserID, notification.TypeMilestoneUpdate,
		`New update on "Design" in project "Shop"`).Return()

	u, err := f.svc.AddUpdate(ctx, freelancer, "m2", milestone.AddUpdateRequest{
		Content:  "Wireframes done",
		Progress: intPtr(140),
	})
	require.NoError(t, err)
	require.Equal(t, "Wireframes done", u.Content)
	require.Equal(t, 100, *u.Progress)
	require.Equal(t, freelancer.UserID, u.UserID)
	f.notifier.AssertExpectations(t)
}

func TestMilestoneService_AddUpdate_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.AddUpdate(ctx, freelancer, "m2", milestone.AddUpdateRequest{Content: "  "})
	require.ErrorIs(t, err, milestone.ErrInvalidInput)

	_, err = f.svc.AddUpdate(ctx, freelancer, "m2", milestone.AddUpdateRequest{Content: "x", Apply: true})
	require.ErrorIs(t, err, milestone.ErrInvalidInput)
}

func TestMilestoneService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ClientID: client.UserID}, nil)
	f.contracts.On("GetByProject", ctx, "p1").Return(activeContract(), nil)
	f.repo.On("List", ctx, "p1").Return([]milestone.Milestone{*design()}, nil)
	f.repo.On("Get", ctx, "m2").Return(design(), nil)
	f.repo.On("ListUpdates", ctx, "m2").Return([]milestone.Update{{ID: "u1"}}, nil)

	list, err := f.svc.List(ctx, client, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	updates, err := f.svc.ListUpdates(ctx, freelancer, "m2")
	require.NoError(t, err)
	require.Len(t, updates, 1)

	_, err = f.svc.List(ctx, stranger, "p1")
	require.ErrorIs(t, err, milestone.ErrNotParty)
}
