// Package middleware carries the HTTP cross-cutting concerns: JWT auth,
// role guards and per-client rate limiting.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/go-crm-api/internal/domain"
)

type contextKey string

const (
	actorKey   contextKey = "actor"
	sessionKey contextKey = "session_id"
)

// TokenVerifier is the slice of the JWT provider auth needs.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Claims mirrors the JWT payload fields auth consumes.
type Claims struct {
	UserID    string
	Username  string
	Role      string
	SessionID string
}

// Authenticate validates the bearer token and stores the acting user on the
// request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			actor := domain.Actor{
				UserID: claims.UserID,
				Role:   claims.Role,
				IP:     ClientIP(r),
			}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			ctx = context.WithValue(ctx, sessionKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin actors. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || actor.Role != domain.RoleAdmin {
			http.Error(w, "admin only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext returns the authenticated actor set by Authenticate.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// SessionIDFromContext returns the session id from the verified token.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok
}

// ClientIP resolves the caller's address, preferring X-Forwarded-For when a
// proxy set it.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
