// Package alert implements the reminder reconciliation engine: it keeps the
// alerts table in agreement with each contact's next-alert date, using the
// calendar day of a fixed-offset zone as the due window.
package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/daywindow"
)

type Service interface {
	// Reconcile applies the decision table after a contact create/update:
	// no date means no-op; a date inside today's window means upsert the
	// pending alert; a date outside it means remove the contact's alerts.
	Reconcile(ctx context.Context, c *domain.Contact, actor domain.Actor) error
	// CascadeDelete soft-deletes every live alert of a soft-deleted contact,
	// preserving the records with matching audit stamps.
	CascadeDelete(ctx context.Context, contactID string, actor domain.Actor) error
	// SweepOnce creates pending alerts for contacts due today that have
	// none. It is additive only, idempotent for a fixed now, and never
	// fails as a whole: per-contact errors are logged and counted.
	SweepOnce(ctx context.Context, now time.Time) domain.SweepResult
	// FetchToday returns the assignee's pending alerts due today, with the
	// referenced contact joined in where it still resolves.
	FetchToday(ctx context.Context, assignee string) ([]domain.Alert, error)
	// Edit patches alert fields and stamps update audit.
	Edit(ctx context.Context, alertID string, req domain.EditAlertRequest, actor domain.Actor) (*domain.Alert, error)
	// Snooze hard-deletes the alert and pushes the contact's next-alert
	// date to 24h after the snooze action. The next sweep or edit produces
	// tomorrow's alert.
	Snooze(ctx context.Context, alertID string, actor domain.Actor) error
}

type alertStore interface {
	Put(ctx context.Context, a *domain.Alert) error
	Get(ctx context.Context, alertID string) (*domain.Alert, error)
	GetPending(ctx context.Context, contactID string) (*domain.Alert, error)
	ListLiveByContact(ctx context.Context, contactID string) ([]domain.Alert, error)
	Update(ctx context.Context, alertID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, alertID string) error
	HardDeleteByContact(ctx context.Context, contactID string) (int, error)
	SoftDeleteByContact(ctx context.Context, contactID string, stamps map[string]interface{}) (int, error)
	ListDueForAssignee(ctx context.Context, assignee string, start, end time.Time) ([]domain.Alert, error)
}

type contactStore interface {
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	ListDueBetween(ctx context.Context, start, end time.Time) ([]domain.Contact, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	alerts   alertStore
	contacts contactStore
	users    userStore
	sms      smsSender
	clock    clock.Clock
	offset   time.Duration
	log      *slog.Logger
}

type ServiceDeps struct {
	AlertRepo   alertStore
	ContactRepo contactStore
	UserRepo    userStore // optional, only for sweep SMS pings
	SMSSender   smsSender // optional
	Clock       clock.Clock
	Offset      time.Duration
	Logger      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &service{
		alerts:   deps.AlertRepo,
		contacts: deps.ContactRepo,
		users:    deps.UserRepo,
		sms:      deps.SMSSender,
		clock:    deps.Clock,
		offset:   deps.Offset,
		log:      log,
	}
}

func (s *service) Reconcile(ctx context.Context, c *domain.Contact, actor domain.Actor) error {
	if c.NextAlert == nil {
		return nil
	}
	now := s.clock.Now()
	if !daywindow.Today(now, s.offset).Contains(*c.NextAlert) {
		// Future or past date: the reminder is not due today, so any alert
		// that exists for the contact is stale and goes away entirely.
		_, err := s.alerts.HardDeleteByContact(ctx, c.ContactID)
		return err
	}

	a := &domain.Alert{
		AlertID:    domain.PendingAlertID(c.ContactID),
		ContactID:  c.ContactID,
		AlertTime:  *c.NextAlert,
		Subject:    c.AlertSubject(),
		AssignedTo: c.AssignedTo,
		Status:     domain.AlertStatusPending,
		Audit:      domain.NewAudit(actor, now),
	}
	prev, err := s.alerts.GetPending(ctx, c.ContactID)
	switch {
	case err == nil:
		// Upsert in place: keep the creation stamps, record the update.
		a.Audit = prev.Audit
		a.StampUpdate(actor, now)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	// Put is keyed by contact, so concurrent reconciliations collapse into
	// one pending item rather than racing check-then-act.
	return s.alerts.Put(ctx, a)
}

func (s *service) CascadeDelete(ctx context.Context, contactID string, actor domain.Actor) error {
	stamps := domain.DeleteStamps(actor, s.clock.Now())
	count, err := s.alerts.SoftDeleteByContact(ctx, contactID, stamps)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("cascaded contact delete to alerts", "contact_id", contactID, "count", count)
	}
	return nil
}

func (s *service) SweepOnce(ctx context.Context, now time.Time) domain.SweepResult {
	var res domain.SweepResult
	w := daywindow.Today(now, s.offset)
	contacts, err := s.contacts.ListDueBetween(ctx, w.Start, w.End)
	if err != nil {
		s.log.Error("sweep: listing due contacts failed", "err", err)
		res.Errors++
		return res
	}
	res.Scanned = len(contacts)
	for i := range contacts {
		created, err := s.sweepContact(ctx, &contacts[i], now)
		if err != nil {
			s.log.Error("sweep: contact skipped", "contact_id", contacts[i].ContactID, "err", err)
			res.Errors++
			continue
		}
		if created {
			res.Created++
		}
	}
	s.log.Info("sweep finished", "scanned", res.Scanned, "created", res.Created, "errors", res.Errors)
	return res
}

// sweepContact creates the contact's pending alert if no live alert exists.
// The sweep is a safety net for missed creations only; it never deletes.
func (s *service) sweepContact(ctx context.Context, c *domain.Contact, now time.Time) (bool, error) {
	if c.NextAlert == nil {
		return false, nil
	}
	live, err := s.alerts.ListLiveByContact(ctx, c.ContactID)
	if err != nil {
		return false, err
	}
	if len(live) > 0 {
		return false, nil
	}
	a := &domain.Alert{
		AlertID:    domain.PendingAlertID(c.ContactID),
		ContactID:  c.ContactID,
		AlertTime:  *c.NextAlert,
		Subject:    c.AlertSubject(),
		AssignedTo: c.AssignedTo,
		Status:     domain.AlertStatusPending,
		Audit:      domain.NewAudit(domain.ActorScheduler, now),
	}
	if err := s.alerts.Put(ctx, a); err != nil {
		return false, err
	}
	s.log.Info("sweep: created alert", "contact_id", c.ContactID, "subject", a.Subject)
	s.notifyAssignee(ctx, c, a)
	return true, nil
}

// notifyAssignee sends a best-effort SMS about a freshly created reminder.
func (s *service) notifyAssignee(ctx context.Context, c *domain.Contact, a *domain.Alert) {
	if s.sms == nil || s.users == nil {
		return
	}
	u, err := s.users.Get(ctx, c.AssignedTo)
	if err != nil || u.Phone == "" {
		return
	}
	if err := s.sms.SendSMS(ctx, u.Phone, "Reminder due today: "+a.Subject); err != nil {
		s.log.Warn("sweep: sms notification failed", "user_id", u.UserID, "err", err)
	}
}

func (s *service) FetchToday(ctx context.Context, assignee string) ([]domain.Alert, error) {
	w := daywindow.Today(s.clock.Now(), s.offset)
	alerts, err := s.alerts.ListDueForAssignee(ctx, assignee, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	for i := range alerts {
		if c, err := s.contacts.Get(ctx, alerts[i].ContactID); err == nil {
			alerts[i].Contact = c
		}
	}
	return alerts, nil
}

func (s *service) Edit(ctx context.Context, alertID string, req domain.EditAlertRequest, actor domain.Actor) (*domain.Alert, error) {
	if _, err := s.alerts.Get(ctx, alertID); err != nil {
		return nil, err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.AlertTime != nil {
		updates["alert_time"] = *req.AlertTime
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if err := s.alerts.Update(ctx, alertID, updates); err != nil {
		return nil, err
	}
	return s.alerts.Get(ctx, alertID)
}

func (s *service) Snooze(ctx context.Context, alertID string, actor domain.Actor) error {
	a, err := s.alerts.Get(ctx, alertID)
	if err != nil {
		return err
	}
	if err := s.alerts.HardDelete(ctx, alertID); err != nil {
		return err
	}
	// One day out from the snooze action itself, not from the alert time.
	next := s.clock.Now().Add(24 * time.Hour)
	return s.contacts.Update(ctx, a.ContactID, map[string]interface{}{"next_alert": next})
}
