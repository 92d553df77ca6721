// Package session implements login, refresh-token rotation and logout.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/token"
	"github.com/go-crm-api/internal/pkg/validate"
)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthTokens, error)
	// Refresh rotates the refresh token and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)
	Logout(ctx context.Context, sessionID string) error
	// Current returns the session with its user joined, for the /me endpoint.
	Current(ctx context.Context, sessionID string) (*domain.Session, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, t string) (*domain.Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID, username, role, sessionID string) (string, error)
}

type service struct {
	sessions      sessionStore
	users         userStore
	signer        tokenSigner
	clock         clock.Clock
	refreshExpiry int64 // seconds
	log           *slog.Logger
}

type ServiceDeps struct {
	SessionRepo      sessionStore
	UserRepo         userStore
	Signer           tokenSigner
	Clock            clock.Clock
	RefreshExpirySec int64
	Logger           *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &service{
		sessions:      deps.SessionRepo,
		users:         deps.UserRepo,
		signer:        deps.Signer,
		clock:         deps.Clock,
		refreshExpiry: deps.RefreshExpirySec,
		log:           log,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthTokens, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Same answer for unknown user and wrong password.
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if u.IsDeleted() {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return nil, fmt.Errorf("account not verified: %w", domain.ErrForbidden)
	}

	now := s.clock.Now()
	refresh, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		Enable:           true,
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Unix() + s.refreshExpiry,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	access, err := s.signer.Sign(u.UserID, u.Username, u.Role, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.log.Info("login", "user_id", u.UserID, "session_id", sess.SessionID)
	return &domain.AuthTokens{AccessToken: access, RefreshToken: sess.RefreshToken, User: u}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	sess, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	now := s.clock.Now()
	if !sess.Enable || now.Unix() >= sess.RefreshExpiresAt {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil || u.IsDeleted() {
		return nil, fmt.Errorf("invalid session user: %w", domain.ErrUnauthorized)
	}

	// Rotate: the old refresh token is dead the moment it is used.
	newToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, sess.SessionID, map[string]interface{}{
		"refresh_token":      newToken,
		"refresh_expires_at": now.Unix() + s.refreshExpiry,
		"updated_at":         now,
	}); err != nil {
		return nil, err
	}
	access, err := s.signer.Sign(u.UserID, u.Username, u.Role, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AuthTokens{AccessToken: access, RefreshToken: newToken, User: u}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return err
	}
	return s.sessions.Update(ctx, sessionID, map[string]interface{}{
		"enable":     false,
		"updated_at": s.clock.Now(),
	})
}

func (s *service) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session disabled: %w", domain.ErrUnauthorized)
	}
	if u, err := s.users.Get(ctx, sess.UserID); err == nil {
		sess.User = u
	}
	return sess, nil
}
