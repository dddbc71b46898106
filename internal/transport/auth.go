package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type principalKey struct{}

// TokenParser resolves a principal from a bearer token.
type TokenParser interface {
	Parse(token string) (user.Principal, error)
}

// PrincipalFromContext returns the authenticated caller, if present.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// AuthMiddleware enforces bearer token authentication and stores the
// resolved principal in the request context.
func AuthMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token", Code: codeUnauthorized})
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			p, err := parser.Parse(token)
			if err != nil || p.UserID == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid bearer token", Code: codeUnauthorized})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// caller returns the principal stored by AuthMiddleware. Routes that call it
// are always mounted behind the middleware.
func caller(r *http.Request) user.Principal {
	p, _ := PrincipalFromContext(r.Context())
	return p
}
