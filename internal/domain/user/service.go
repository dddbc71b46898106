package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpggio/gigboard/internal/repository"
)

const minPasswordLength = 8

// Service handles account operations.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokens TokenIssuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// RegisterRequest defines account creation inputs.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     Role
}

// Register creates an account and returns it with a fresh access token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", ErrInvalidInput
	}
	if strings.TrimSpace(req.Name) == "" || len(req.Password) < minPasswordLength || !req.Role.Valid() {
		return nil, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh access token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return u, token, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
