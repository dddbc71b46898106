package contract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
	"github.com/rpggio/gigboard/internal/repository/mocks"
)

var (
	client     = user.Principal{UserID: "client1", Role: user.RoleClient}
	freelancer = user.Principal{UserID: "free1", Role: user.RoleFreelancer}
	stranger   = user.Principal{UserID: "other", Role: user.RoleClient}
)

func activeContract() *contract.Contract {
	return &contract.Contract{
		ID:           "c1",
		ProjectID:    "p1",
		ProposalID:   "prop1",
		FreelancerID: freelancer.UserID,
		ClientID:     client.UserID,
		ProjectTitle: "Landing page",
		Amount:       decimal.NewFromInt(1000),
		Status:       contract.StatusActive,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestContractService_CreatePayment_ExactRemainingSettles(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	notifier := &mocks.Notifier{}

	c := activeContract()
	repo.On("Get", ctx, "c1").Return(c, nil)
	repo.On("AddPayment", ctx, "c1").Return(c, []contract.Payment{paid("400")}, nil)
	notifier.On("Notify", mock.Anything, freelancer.UserID, notification.TypePaymentReceived,
		`Payment of $600.00 received for project "Landing page"`).Return()

	svc := contract.NewService(repo, notifier, contract.Options{}, nil)
	res, err := svc.CreatePayment(ctx, client, "c1", contract.PaymentRequest{Amount: dec("600")})
	require.NoError(t, err)

	require.Equal(t, contract.PaymentCompleted, res.Payment.Status)
	require.Equal(t, "Payment", res.Payment.Description)
	require.Equal(t, "credit_card", res.Payment.Method)
	require.Equal(t, client.UserID, res.Payment.PaidBy)
	require.NotNil(t, res.Payment.PaidAt)
	require.True(t, strings.HasPrefix(res.Payment.TransactionID, "TXN-"))

	require.Equal(t, contract.SettlementPaid, res.Summary.PaymentStatus)
	require.True(t, res.Summary.RemainingAmount.IsZero())
	notifier.AssertExpectations(t)
}

func TestContractService_CreatePayment_OneCentOverFails(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	c := activeContract()
	repo.On("Get", ctx, "c1").Return(c, nil)
	repo.On("AddPayment", ctx, "c1").Return(c, []contract.Payment{paid("400")}, nil)

	svc := contract.NewService(repo, &mocks.Notifier{}, contract.Options{}, nil)
	_, err := svc.CreatePayment(ctx, client, "c1", contract.PaymentRequest{Amount: dec("600.01")})
	require.ErrorIs(t, err, contract.ErrExceedsBalance)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestContractService_CreatePayment_AfterFullyPaidFails(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	c := activeContract()
	repo.On("Get", ctx, "c1").Return(c, nil)
	repo.On("AddPayment", ctx, "c1").Return(c, []contract.Payment{paid("400"), paid("600")}, nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)
	_, err := svc.CreatePayment(ctx, client, "c1", contract.PaymentRequest{Amount: dec("0.01")})
	require.ErrorIs(t, err, contract.ErrExceedsBalance)
}

func TestContractService_CreatePayment_Validation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	repo.On("Get", ctx, "c1").Return(activeContract(), nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)

	_, err := svc.CreatePayment(ctx, freelancer, "c1", contract.PaymentRequest{Amount: dec("10")})
	require.ErrorIs(t, err, contract.ErrClientOnly)

	for _, amount := range []string{"0", "-5", "1.001"} {
		_, err = svc.CreatePayment(ctx, client, "c1", contract.PaymentRequest{Amount: dec(amount)})
		require.ErrorIs(t, err, contract.ErrInvalidAmount, amount)
	}
	repo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything)
}

func TestContractService_CreatePayment_CancelledContract(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	c := activeContract()
	c.Status = contract.StatusCancelled
	repo.On("Get", ctx, "c1").Return(c, nil)
	repo.On("AddPayment", ctx, "c1").Return(c, []contract.Payment{}, nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)
	_, err := svc.CreatePayment(ctx, client, "c1", contract.PaymentRequest{Amount: dec("10")})
	require.ErrorIs(t, err, contract.ErrCancelled)
}

func TestContractService_CreatePayment_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)
	_, err := svc.CreatePayment(ctx, client, "missing", contract.PaymentRequest{Amount: dec("10")})
	require.ErrorIs(t, err, contract.ErrContractNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractService_Complete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	notifier := &mocks.Notifier{}

	repo.On("Transition", ctx, "c1").Return(activeContract(), []contract.Payment{paid("100")}, nil)
	notifier.On("Notify", mock.Anything, client.UserID, notification.TypeContractCompleted, mock.Anything).Return()

	svc := contract.NewService(repo, notifier, contract.Options{}, nil)
	c, err := svc.Complete(ctx, freelancer, "c1")
	require.NoError(t, err)
	require.Equal(t, contract.StatusCompleted, c.Status)
	require.NotNil(t, c.EndDate)
	notifier.AssertExpectations(t)
}

func TestContractService_Complete_RequireFullPayment(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	repo.On("Transition", ctx, "c1").Return(activeContract(), []contract.Payment{paid("100")}, nil)

	svc := contract.NewService(repo, nil, contract.Options{RequireFullPayment: true}, nil)
	_, err := svc.Complete(ctx, client, "c1")
	require.ErrorIs(t, err, contract.ErrOutstandingBalance)
}

func TestContractService_Complete_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	done := activeContract()
	done.ID = "c2"
	done.Status = contract.StatusCompleted
	repo.On("Transition", ctx, "c1").Return(activeContract(), []contract.Payment{}, nil)
	repo.On("Transition", ctx, "c2").Return(done, []contract.Payment{}, nil)
	cancelled := activeContract()
	cancelled.ID = "c3"
	cancelled.Status = contract.StatusCancelled
	repo.On("Transition", ctx, "c3").Return(cancelled, []contract.Payment{}, nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)

	_, err := svc.Complete(ctx, stranger, "c1")
	require.ErrorIs(t, err, contract.ErrNotParty)

	_, err = svc.Complete(ctx, client, "c2")
	require.ErrorIs(t, err, contract.ErrNotActive)

	_, err = svc.Cancel(ctx, client, "c2")
	require.ErrorIs(t, err, contract.ErrNotActive)

	_, err = svc.Complete(ctx, freelancer, "c3")
	require.ErrorIs(t, err, contract.ErrNotActive)

	_, err = svc.Cancel(ctx, client, "c3")
	require.ErrorIs(t, err, contract.ErrNotActive)
}

func TestStatus_Terminal(t *testing.T) {
	require.False(t, contract.StatusActive.Terminal())
	require.True(t, contract.StatusCompleted.Terminal())
	require.True(t, contract.StatusCancelled.Terminal())
}

func TestContractService_Cancel(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}
	notifier := &mocks.Notifier{}

	repo.On("Transition", ctx, "c1").Return(activeContract(), []contract.Payment{}, nil)
	notifier.On("Notify", mock.Anything, freelancer.UserID, notification.TypeContractCancelled, mock.Anything).Return()

	svc := contract.NewService(repo, notifier, contract.Options{}, nil)

	_, err := svc.Cancel(ctx, freelancer, "c1")
	require.ErrorIs(t, err, contract.ErrClientOnly)

	c, err := svc.Cancel(ctx, client, "c1")
	require.NoError(t, err)
	require.Equal(t, contract.StatusCancelled, c.Status)
	notifier.AssertExpectations(t)
}

func TestContractService_GetDetail(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	payments := []contract.Payment{paid("250"), paid("150")}
	repo.On("Get", ctx, "c1").Return(activeContract(), nil)
	repo.On("ListPayments", ctx, "c1").Return(payments, nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)

	detail, err := svc.GetDetail(ctx, freelancer, "c1")
	require.NoError(t, err)
	require.Len(t, detail.Payments, 2)
	require.Equal(t, "400", detail.TotalPaid.String())
	require.Equal(t, "600", detail.RemainingAmount.String())
	require.Equal(t, contract.SettlementPartiallyPaid, detail.PaymentStatus)

	_, err = svc.GetDetail(ctx, stranger, "c1")
	require.ErrorIs(t, err, contract.ErrNotParty)
}

func TestContractService_List_ByRole(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContractRepository{}

	c := *activeContract()
	repo.On("ListForFreelancer", ctx, freelancer.UserID).Return([]contract.Contract{c}, nil)
	repo.On("ListForClient", ctx, client.UserID).Return([]contract.Contract{c}, nil)
	repo.On("ListPayments", ctx, "c1").Return([]contract.Payment{paid("1000")}, nil)

	svc := contract.NewService(repo, nil, contract.Options{}, nil)

	list, err := svc.List(ctx, freelancer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, contract.SettlementPaid, list[0].PaymentStatus)

	list, err = svc.List(ctx, client)
	require.NoError(t, err)
	require.Len(t, list, 1)
	repo.AssertExpectations(t)
}
