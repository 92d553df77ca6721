package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-crm-api/internal/domain"
)

type stubVerifier struct {
	claims *Claims
	err    error
}

func (s *stubVerifier) Verify(string) (*Claims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, wantActor *domain.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantActor != nil {
			actor, ok := ActorFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, *wantActor, actor)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw := Authenticate(&stubVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler(t, nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw := Authenticate(&stubVerifier{err: errors.New("expired")})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_SetsActor(t *testing.T) {
	mw := Authenticate(&stubVerifier{claims: &Claims{
		UserID:    "usr1",
		Role:      domain.RoleEmployee,
		SessionID: "sess1",
	}})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.RemoteAddr = "10.0.0.5:51234"
	rec := httptest.NewRecorder()

	want := domain.Actor{UserID: "usr1", Role: domain.RoleEmployee, IP: "10.0.0.5"}
	mw(okHandler(t, &want)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	auth := Authenticate(&stubVerifier{claims: &Claims{UserID: "usr1", Role: domain.RoleEmployee}})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	auth(RequireAdmin(handler)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	authAdm := Authenticate(&stubVerifier{claims: &Claims{UserID: "adm1", Role: domain.RoleAdmin}})
	rec = httptest.NewRecorder()
	authAdm(RequireAdmin(handler)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", ClientIP(req))
}

func TestClientIP_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.9:1234"

	assert.Equal(t, "192.168.1.9", ClientIP(req))
}
