// Package testserver runs the full HTTP API over an in-memory SQLite store
// for end-to-end tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/auth"
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
	"github.com/rpggio/gigboard/internal/metrics"
	"github.com/rpggio/gigboard/internal/store"
	"github.com/rpggio/gigboard/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	DB     *store.DB
}

// Account is a registered user and its bearer token.
type Account struct {
	ID    string
	Email string
	Role  user.Role
	Token string
}

// New starts a server backed by a fresh in-memory database.
func New(t *testing.T, opts contract.Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := store.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))

	users := store.NewUserRepository(db)
	projects := store.NewProjectRepository(db)
	contracts := store.NewContractRepository(db)

	tokens := auth.NewTokens("test-secret", time.Hour)
	notifications := notification.NewService(store.NewNotificationRepository(db), nil, nil)
	notifier := metrics.CountNotifications(notifications)

	svcs := transport.Services{
		Users:         user.NewService(users, tokens, nil),
		Projects:      project.NewService(projects, nil),
		Proposals:     proposal.NewService(store.NewProposalRepository(db), projects, notifier, nil),
		Contracts:     contract.NewService(contracts, notifier, opts, nil),
		Milestones:    milestone.NewService(store.NewMilestoneRepository(db), projects, contracts, notifier, nil),
		Notifications: notifications,
		Reviews:       review.NewService(store.NewReviewRepository(db), contracts, notifier, nil),
		Profiles:      profile.NewService(store.NewProfileRepository(db), users, nil),
		Messages:      message.NewService(store.NewMessageRepository(db), users, notifier, nil),
		Dashboard:     dashboard.NewService(store.NewDashboardRepository(db), nil),
	}

	server := httptest.NewServer(transport.NewServer(svcs, tokens, nil))
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db}
}

// Register creates an account with role and returns it with its token.
func (ts *TestServer) Register(t *testing.T, role user.Role) Account {
	t.Helper()

	email := fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8])
	var out struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	status := ts.Do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    email,
		"password": "password123",
		"name":     "Test " + string(role),
		"role":     role,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, out.Token)

	return Account{ID: out.ID, Email: email, Role: role, Token: out.Token}
}

// Do sends a JSON request and decodes the response body into out when out
// is non-nil. It returns the status code.
func (ts *TestServer) Do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
