// Package contact implements contact CRUD and keeps the alert engine in sync
// with every write: creates and updates reconcile the contact's alert, and
// deletes cascade to its alerts.
package contact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/validate"
)

const defaultPageSize = 20

type Service interface {
	Create(ctx context.Context, req domain.CreateContactRequest, actor domain.Actor) (*domain.Contact, error)
	Get(ctx context.Context, contactID string, actor domain.Actor) (*domain.Contact, error)
	Update(ctx context.Context, contactID string, req domain.UpdateContactRequest, actor domain.Actor) (*domain.Contact, error)
	Delete(ctx context.Context, contactID string, actor domain.Actor) error
	List(ctx context.Context, q domain.ContactListQuery, actor domain.Actor) (*domain.ContactPage, error)
	// AttachAudio uploads an audio note for the contact and records the
	// object key on the contact.
	AttachAudio(ctx context.Context, contactID, filename string, r io.Reader, actor domain.Actor) (*domain.AudioRef, error)
}

type contactStore interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	ScanLive(ctx context.Context, assignee string) ([]domain.Contact, error)
	AppendAudio(ctx context.Context, contactID string, ref domain.AudioRef) error
}

// alertSyncer is the slice of the alert engine contact writes need.
type alertSyncer interface {
	Reconcile(ctx context.Context, c *domain.Contact, actor domain.Actor) error
	CascadeDelete(ctx context.Context, contactID string, actor domain.Actor) error
}

type audioStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	contacts contactStore
	alerts   alertSyncer
	audio    audioStore
	clock    clock.Clock
	log      *slog.Logger
}

type ServiceDeps struct {
	ContactRepo contactStore
	AlertSync   alertSyncer
	AudioStore  audioStore // optional; AttachAudio fails without it
	Clock       clock.Clock
	Logger      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &service{
		contacts: deps.ContactRepo,
		alerts:   deps.AlertSync,
		audio:    deps.AudioStore,
		clock:    deps.Clock,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateContactRequest, actor domain.Actor) (*domain.Contact, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	assignedTo := req.AssignedTo
	if assignedTo == "" || actor.Role != domain.RoleAdmin {
		// Non-admins always own what they create.
		assignedTo = actor.UserID
	}
	c := &domain.Contact{
		ContactID:  id.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
		Subject:    req.Subject,
		NextAlert:  req.NextAlert,
		AssignedTo: assignedTo,
		Audit:      domain.NewAudit(actor, s.clock.Now()),
	}
	if err := s.contacts.Put(ctx, c); err != nil {
		return nil, err
	}
	// The contact is saved either way, but a failed reconcile must surface:
	// the alert table may now disagree with the contact until it is retried.
	if err := s.alerts.Reconcile(ctx, c, actor); err != nil {
		s.log.Error("alert reconcile after create failed", "contact_id", c.ContactID, "err", err)
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, contactID string, actor domain.Actor) (*domain.Contact, error) {
	c, err := s.contacts.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, fmt.Errorf("contact %s: %w", contactID, domain.ErrNotFound)
	}
	if actor.Role != domain.RoleAdmin && c.AssignedTo != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, contactID string, req domain.UpdateContactRequest, actor domain.Actor) (*domain.Contact, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	c, err := s.Get(ctx, contactID, actor)
	if err != nil {
		return nil, err
	}

	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Name != nil {
		updates["name"] = *req.Name
		c.Name = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
		c.Email = *req.Email
	}
	if req.Phone != nil {
		updates["ph"] = *req.Phone
		c.Phone = *req.Phone
	}
	if req.Location != nil {
		updates["loc"] = *req.Location
		c.Location = *req.Location
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
		c.Subject = *req.Subject
	}
	if req.NextAlert != nil {
		updates["next_alert"] = *req.NextAlert
		c.NextAlert = req.NextAlert
	}
	if req.AssignedTo != nil {
		if actor.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
		updates["assigned_to"] = *req.AssignedTo
		c.AssignedTo = *req.AssignedTo
	}

	if err := s.contacts.Update(ctx, contactID, updates); err != nil {
		return nil, err
	}
	if err := s.alerts.Reconcile(ctx, c, actor); err != nil {
		s.log.Error("alert reconcile after update failed", "contact_id", contactID, "err", err)
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, contactID string, actor domain.Actor) error {
	if _, err := s.Get(ctx, contactID, actor); err != nil {
		return err
	}
	if err := s.contacts.Update(ctx, contactID, domain.DeleteStamps(actor, s.clock.Now())); err != nil {
		return err
	}
	return s.alerts.CascadeDelete(ctx, contactID, actor)
}

func (s *service) List(ctx context.Context, q domain.ContactListQuery, actor domain.Actor) (*domain.ContactPage, error) {
	assignee := actor.UserID
	if actor.Role == domain.RoleAdmin {
		assignee = "" // admins see everything
	}
	contacts, err := s.contacts.ScanLive(ctx, assignee)
	if err != nil {
		return nil, err
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := contacts[:0]
		for _, c := range contacts {
			if strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Phone), needle) ||
				strings.Contains(strings.ToLower(c.Email), needle) {
				filtered = append(filtered, c)
			}
		}
		contacts = filtered
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	total := len(contacts)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &domain.ContactPage{
		Contacts: contacts[start:end],
		Total:    total,
		Page:     page,
		Pages:    pages,
	}, nil
}

func (s *service) AttachAudio(ctx context.Context, contactID, filename string, r io.Reader, actor domain.Actor) (*domain.AudioRef, error) {
	if s.audio == nil {
		return nil, fmt.Errorf("%w: audio storage not configured", domain.ErrBadRequest)
	}
	c, err := s.Get(ctx, contactID, actor)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	key := fmt.Sprintf("contacts/%s/audio/%d-%s", c.ContactID, now.Unix(), filename)
	if _, err := s.audio.Upload(ctx, key, r, ""); err != nil {
		return nil, err
	}
	ref := domain.AudioRef{Key: key, UploadedOn: now}
	if err := s.contacts.AppendAudio(ctx, contactID, ref); err != nil {
		return nil, err
	}
	return &ref, nil
}
