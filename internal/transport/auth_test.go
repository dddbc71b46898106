package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain"
	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/user"
)

type testParser struct {
	tokens map[string]user.Principal
}

func (p *testParser) Parse(token string) (user.Principal, error) {
	principal, ok := p.tokens[token]
	if !ok {
		return user.Principal{}, ErrUnauthorized
	}
	return principal, nil
}

func TestAuthMiddleware(t *testing.T) {
	want := user.Principal{UserID: "u1", Role: user.RoleClient}
	parser := &testParser{tokens: map[string]user.Principal{"token": want}}

	handler := AuthMiddleware(parser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	parser := &testParser{}
	handler := AuthMiddleware(parser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"", "Bearer unknown", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, header)
		require.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{contract.ErrInvalidAmount, http.StatusBadRequest, codeInvalidInput},
		{contract.ErrExceedsBalance, http.StatusBadRequest, codeInvalidState},
		{fmt.Errorf("wrapped: %w", domain.ErrConflict), http.StatusBadRequest, codeConflict},
		{contract.ErrClientOnly, http.StatusForbidden, codeForbidden},
		{contract.ErrContractNotFound, http.StatusNotFound, codeNotFound},
		{user.ErrInvalidCredentials, http.StatusUnauthorized, codeUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError, codeInternal},
	}

	for _, tt := range tests {
		status, code := statusFor(tt.err)
		require.Equal(t, tt.status, status, tt.err.Error())
		require.Equal(t, tt.code, code, tt.err.Error())
	}
}
