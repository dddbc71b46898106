package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
	"github.com/rpggio/gigboard/internal/repository/mocks"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	tokens := &mocks.TokenIssuer{}

	var stored *user.User
	repo.On("Create", ctx, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*user.User) }).
		Return(nil)
	tokens.On("Issue", mock.AnythingOfType("user.Principal")).Return("token-1", nil)

	svc := user.NewService(repo, tokens, nil)
	u, token, err := svc.Register(ctx, user.RegisterRequest{
		Email:    "Ada@Example.com",
		Password: "correct horse",
		Name:     "Ada",
		Role:     user.RoleFreelancer,
	})
	require.NoError(t, err)
	require.Equal(t, "token-1", token)
	require.Equal(t, "ada@example.com", u.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestUserService_Register_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrConflict)

	svc := user.NewService(repo, &mocks.TokenIssuer{}, nil)

	_, _, err := svc.Register(ctx, user.RegisterRequest{Email: "nope", Password: "longenough", Name: "A", Role: user.RoleClient})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, _, err = svc.Register(ctx, user.RegisterRequest{Email: "a@b.co", Password: "short", Name: "A", Role: user.RoleClient})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.Register(ctx, user.RegisterRequest{Email: "a@b.co", Password: "longenough", Name: "A", Role: "admin"})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, _, err = svc.Register(ctx, user.RegisterRequest{Email: "a@b.co", Password: "longenough", Name: "A", Role: user.RoleClient})
	require.ErrorIs(t, err, user.ErrEmailTaken)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	tokens := &mocks.TokenIssuer{}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{ID: "u1", Email: "ada@example.com", Role: user.RoleClient, PasswordHash: string(hash)}

	repo.On("GetByEmail", ctx, "ada@example.com").Return(u, nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)
	tokens.On("Issue", user.Principal{UserID: "u1", Role: user.RoleClient}).Return("tok", nil)

	svc := user.NewService(repo, tokens, nil)

	got, token, err := svc.Login(ctx, " ADA@example.com ", "secret-pass")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "tok", token)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ghost@example.com", "secret-pass")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}
