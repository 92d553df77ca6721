// Package user implements account management: registration, verification,
// profile updates, password changes and the admin user listing.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/validate"
)

const defaultPageSize = 20

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest, actor domain.Actor) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// Verify marks the account usable for login. Admin only.
	Verify(ctx context.Context, userID string, actor domain.Actor) error
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateUserRequest, actor domain.Actor) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string, actor domain.Actor) error
	List(ctx context.Context, page, limit int) (*domain.UserPage, error)
	// Delete soft-deletes the account and disables its sessions.
	Delete(ctx context.Context, userID string, actor domain.Actor) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ScanLive(ctx context.Context) ([]domain.User, error)
}

type sessionDisabler interface {
	DisableByUser(ctx context.Context, userID string) error
}

type service struct {
	users    userStore
	sessions sessionDisabler
	clock    clock.Clock
	log      *slog.Logger
}

func NewService(users userStore, sessions sessionDisabler, clk clock.Clock, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{users: users, sessions: sessions, clock: clk, log: log}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username %q taken: %w", req.Username, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		Verified:     false, // an admin verifies the account before first login
		Audit:        domain.NewAudit(actor, s.clock.Now()),
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", u.UserID, "uname", u.Username)
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsDeleted() {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return u, nil
}

func (s *service) Verify(ctx context.Context, userID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	updates["verified"] = true
	return s.users.Update(ctx, userID, updates)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	if actor.Role != domain.RoleAdmin && actor.UserID != userID {
		return nil, domain.ErrForbidden
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Name != nil {
		updates["name"] = *req.Name
		u.Name = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
		u.Email = *req.Email
	}
	if req.Phone != nil {
		updates["ph"] = *req.Phone
		u.Phone = *req.Phone
	}
	if req.Job != nil {
		updates["job"] = *req.Job
		u.Job = *req.Job
	}
	if req.Location != nil {
		updates["loc"] = *req.Location
		u.Location = *req.Location
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
		u.Bio = *req.Bio
	}
	if req.Birthday != nil {
		dob, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: dob must be YYYY-MM-DD", domain.ErrBadRequest)
		}
		updates["dob"] = dob
		u.Birthday = &dob
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string, actor domain.Actor) error {
	if actor.UserID != userID {
		return domain.ErrForbidden
	}
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return fmt.Errorf("%w: password must be 8-72 characters", domain.ErrBadRequest)
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("wrong password: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	updates["pwd"] = string(hash)
	if err := s.users.Update(ctx, userID, updates); err != nil {
		return err
	}
	// Force a fresh login everywhere after a password change.
	if s.sessions != nil {
		if err := s.sessions.DisableByUser(ctx, userID); err != nil {
			s.log.Warn("disabling sessions after password change failed", "user_id", userID, "err", err)
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, page, limit int) (*domain.UserPage, error) {
	users, err := s.users.ScanLive(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	total := len(users)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &domain.UserPage{Users: users[start:end], Total: total, Page: page, Pages: pages}, nil
}

func (s *service) Delete(ctx context.Context, userID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Update(ctx, userID, domain.DeleteStamps(actor, s.clock.Now())); err != nil {
		return err
	}
	if s.sessions != nil {
		if err := s.sessions.DisableByUser(ctx, userID); err != nil {
			s.log.Warn("disabling sessions after user delete failed", "user_id", userID, "err", err)
		}
	}
	return nil
}
