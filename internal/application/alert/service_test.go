package alert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
)

const istOffset = 330 * time.Minute

type mockAlertStore struct{ mock.Mock }

func (m *mockAlertStore) Put(ctx context.Context, a *domain.Alert) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAlertStore) Get(ctx context.Context, alertID string) (*domain.Alert, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *mockAlertStore) GetPending(ctx context.Context, contactID string) (*domain.Alert, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *mockAlertStore) ListLiveByContact(ctx context.Context, contactID string) ([]domain.Alert, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *mockAlertStore) Update(ctx context.Context, alertID string, updates map[string]interface{}) error {
	return m.Called(ctx, alertID, updates).Error(0)
}

func (m *mockAlertStore) HardDelete(ctx context.Context, alertID string) error {
	return m.Called(ctx, alertID).Error(0)
}

func (m *mockAlertStore) HardDeleteByContact(ctx context.Context, contactID string) (int, error) {
	args := m.Called(ctx, contactID)
	return args.Int(0), args.Error(1)
}

func (m *mockAlertStore) SoftDeleteByContact(ctx context.Context, contactID string, stamps map[string]interface{}) (int, error) {
	args := m.Called(ctx, contactID, stamps)
	return args.Int(0), args.Error(1)
}

func (m *mockAlertStore) ListDueForAssignee(ctx context.Context, assignee string, start, end time.Time) ([]domain.Alert, error) {
	args := m.Called(ctx, assignee, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *mockContactStore) Update(ctx context.Context, contactID string, updates map[string]interface{}) error {
	return m.Called(ctx, contactID, updates).Error(0)
}

func (m *mockContactStore) ListDueBetween(ctx context.Context, start, end time.Time) ([]domain.Contact, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(alerts *mockAlertStore, contacts *mockContactStore, now time.Time) Service {
	return NewService(ServiceDeps{
		AlertRepo:   alerts,
		ContactRepo: contacts,
		Clock:       clock.Fixed{T: now},
		Offset:      istOffset,
		Logger:      quietLogger(),
	})
}

func timePtr(t time.Time) *time.Time { return &t }

var testActor = domain.Actor{UserID: "usr1", Role: domain.RoleEmployee, IP: "10.0.0.5"}

func TestReconcile_NoDateIsNoop(t *testing.T) {
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))

	c := &domain.Contact{ContactID: "c1", Name: "Asha"}
	require.NoError(t, svc.Reconcile(context.Background(), c, testActor))

	alerts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	alerts.AssertNotCalled(t, "HardDeleteByContact", mock.Anything, mock.Anything)
}

func TestReconcile_DateInWindowCreatesPendingAlert(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) // inside the IST day
	c := &domain.Contact{
		ContactID:  "c1",
		Name:       "Asha",
		Subject:    "follow up on invoice",
		NextAlert:  timePtr(due),
		AssignedTo: "usr1",
	}

	alerts.On("GetPending", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		return a.AlertID == domain.PendingAlertID("c1") &&
			a.ContactID == "c1" &&
			a.AlertTime.Equal(due) &&
			a.Subject == "follow up on invoice" &&
			a.AssignedTo == "usr1" &&
			a.Status == domain.AlertStatusPending &&
			a.CreatedBy == "usr1" &&
			a.DeleteStatus == domain.DeleteStatusLive
	})).Return(nil)

	require.NoError(t, svc.Reconcile(context.Background(), c, testActor))
	alerts.AssertExpectations(t)
}

func TestReconcile_DefaultSubjectFromName(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	c := &domain.Contact{ContactID: "c1", Name: "Asha", NextAlert: timePtr(now), AssignedTo: "usr1"}

	alerts.On("GetPending", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		return a.Subject == "Reminder for Asha"
	})).Return(nil)

	require.NoError(t, svc.Reconcile(context.Background(), c, testActor))
	alerts.AssertExpectations(t)
}

func TestReconcile_ExistingPendingAlertIsUpserted(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	createdOn := now.Add(-2 * time.Hour)
	prev := &domain.Alert{
		AlertID:   domain.PendingAlertID("c1"),
		ContactID: "c1",
		Subject:   "old subject",
		Audit:     domain.NewAudit(domain.Actor{UserID: "usr9", IP: "10.0.0.9"}, createdOn),
	}
	due := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	c := &domain.Contact{ContactID: "c1", Name: "Asha", Subject: "new subject", NextAlert: timePtr(due), AssignedTo: "usr2"}

	alerts.On("GetPending", mock.Anything, "c1").Return(prev, nil)
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		// creation stamps survive, the edit is recorded as an update
		return a.AlertID == prev.AlertID &&
			a.Subject == "new subject" &&
			a.AssignedTo == "usr2" &&
			a.CreatedBy == "usr9" &&
			a.CreatedOn.Equal(createdOn) &&
			a.UpdatedBy == "usr1" &&
			a.UpdatedOn != nil && a.UpdatedOn.Equal(now)
	})).Return(nil)

	require.NoError(t, svc.Reconcile(context.Background(), c, testActor))
	alerts.AssertExpectations(t)
}

func TestReconcile_DateOutOfWindowDeletesAlerts(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	for name, due := range map[string]time.Time{
		"future": time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		"past":   time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	} {
		t.Run(name, func(t *testing.T) {
			c := &domain.Contact{ContactID: "c1", Name: "Asha", NextAlert: timePtr(due)}
			alerts.On("HardDeleteByContact", mock.Anything, "c1").Return(1, nil).Once()

			require.NoError(t, svc.Reconcile(context.Background(), c, testActor))
		})
	}
	alerts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	alerts.AssertExpectations(t)
}

func TestReconcile_WindowBoundaryUsesLocalDay(t *testing.T) {
	// 20:00 UTC on May 31 is already June 1 in IST, so a date early on
	// June 1 IST is in window while late June 1 UTC is not.
	now := time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	inWindow := time.Date(2024, 5, 31, 18, 30, 0, 0, time.UTC) // June 1 00:00 IST
	c := &domain.Contact{ContactID: "c1", Name: "Asha", NextAlert: timePtr(inWindow)}
	alerts.On("GetPending", mock.Anything, "c1").Return(nil, domain.ErrNotFound)
	alerts.On("Put", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, svc.Reconcile(context.Background(), c, testActor))

	outOfWindow := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC) // June 2 00:00 IST
	c2 := &domain.Contact{ContactID: "c2", Name: "Ravi", NextAlert: timePtr(outOfWindow)}
	alerts.On("HardDeleteByContact", mock.Anything, "c2").Return(0, nil)
	require.NoError(t, svc.Reconcile(context.Background(), c2, testActor))

	alerts.AssertExpectations(t)
}

func TestCascadeDelete_SoftDeletesWithStamps(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	alerts.On("SoftDeleteByContact", mock.Anything, "c1", mock.MatchedBy(func(stamps map[string]interface{}) bool {
		on, ok := stamps["dlt_on"].(time.Time)
		return ok && on.Equal(now) &&
			stamps["dlt_by"] == "usr1" &&
			stamps["dlt_sts"] == domain.DeleteStatusDeleted
	})).Return(2, nil)

	require.NoError(t, svc.CascadeDelete(context.Background(), "c1", testActor))
	alerts.AssertExpectations(t)
}

func TestSweepOnce_CreatesMissingAlerts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contact{
		{ContactID: "c1", Name: "Asha", NextAlert: timePtr(due), AssignedTo: "usr1"},
	}, nil)
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return([]domain.Alert{}, nil)
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		return a.AlertID == domain.PendingAlertID("c1") &&
			a.CreatedBy == domain.ActorScheduler.UserID &&
			a.CreatedIP == "127.0.0.1" &&
			a.Status == domain.AlertStatusPending
	})).Return(nil)

	res := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, domain.SweepResult{Scanned: 1, Created: 1, Errors: 0}, res)
	alerts.AssertExpectations(t)
}

func TestSweepOnce_IsIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	contact := domain.Contact{ContactID: "c1", Name: "Asha", NextAlert: timePtr(due), AssignedTo: "usr1"}
	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contact{contact}, nil)

	// First pass finds nothing and creates; second pass sees the live alert.
	created := domain.Alert{AlertID: domain.PendingAlertID("c1"), ContactID: "c1"}
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return([]domain.Alert{}, nil).Once()
	alerts.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return([]domain.Alert{created}, nil).Once()

	first := svc.SweepOnce(context.Background(), now)
	second := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 0, second.Created)
	alerts.AssertExpectations(t)
}

func TestSweepOnce_SkipsContactsWithDoneAlert(t *testing.T) {
	// A live alert marked done still counts as handled: the sweep must not
	// resurrect a reminder someone already dealt with.
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contact{
		{ContactID: "c1", Name: "Asha", NextAlert: timePtr(due)},
	}, nil)
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return([]domain.Alert{
		{AlertID: "a1", ContactID: "c1", Status: domain.AlertStatusDone},
	}, nil)

	res := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, 0, res.Created)
	alerts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSweepOnce_IsolatesPerContactErrors(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contact{
		{ContactID: "c1", Name: "Asha", NextAlert: timePtr(due)},
		{ContactID: "c2", Name: "Ravi", NextAlert: timePtr(due)},
		{ContactID: "c3", Name: "Meera", NextAlert: timePtr(due)},
	}, nil)
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return(nil, errors.New("throttled"))
	alerts.On("ListLiveByContact", mock.Anything, "c2").Return([]domain.Alert{}, nil)
	alerts.On("ListLiveByContact", mock.Anything, "c3").Return([]domain.Alert{}, nil)
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool { return a.ContactID == "c2" })).Return(errors.New("put failed"))
	alerts.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool { return a.ContactID == "c3" })).Return(nil)

	res := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, domain.SweepResult{Scanned: 3, Created: 1, Errors: 2}, res)
	alerts.AssertExpectations(t)
}

func TestSweepOnce_ListFailureReturnsErrorResult(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down"))

	res := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, domain.SweepResult{Scanned: 0, Created: 0, Errors: 1}, res)
}

func TestSweepOnce_NotifiesAssigneeBySMS(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	users := new(mockUserStore)
	sms := new(mockSMSSender)
	svc := NewService(ServiceDeps{
		AlertRepo:   alerts,
		ContactRepo: contacts,
		UserRepo:    users,
		SMSSender:   sms,
		Clock:       clock.Fixed{T: now},
		Offset:      istOffset,
		Logger:      quietLogger(),
	})

	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	contacts.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contact{
		{ContactID: "c1", Name: "Asha", Subject: "renewal call", NextAlert: timePtr(due), AssignedTo: "usr1"},
	}, nil)
	alerts.On("ListLiveByContact", mock.Anything, "c1").Return([]domain.Alert{}, nil)
	alerts.On("Put", mock.Anything, mock.Anything).Return(nil)
	users.On("Get", mock.Anything, "usr1").Return(&domain.User{UserID: "usr1", Phone: "+911234567890"}, nil)
	sms.On("SendSMS", mock.Anything, "+911234567890", "Reminder due today: renewal call").Return(nil)

	res := svc.SweepOnce(context.Background(), now)

	assert.Equal(t, 1, res.Created)
	sms.AssertExpectations(t)
}

func TestFetchToday_JoinsContacts(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	c1 := &domain.Contact{ContactID: "c1", Name: "Asha"}
	alerts.On("ListDueForAssignee", mock.Anything, "usr1",
		time.Date(2024, 5, 31, 18, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 18, 29, 59, int(999*time.Millisecond), time.UTC),
	).Return([]domain.Alert{
		{AlertID: "pnd#c1", ContactID: "c1"},
		{AlertID: "pnd#c2", ContactID: "c2"},
	}, nil)
	contacts.On("Get", mock.Anything, "c1").Return(c1, nil)
	contacts.On("Get", mock.Anything, "c2").Return(nil, domain.ErrNotFound)

	got, err := svc.FetchToday(context.Background(), "usr1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c1, got[0].Contact)
	assert.Nil(t, got[1].Contact) // dangling reference stays, just unjoined
	alerts.AssertExpectations(t)
}

func TestEdit_PatchesFieldsAndStampsUpdate(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	existing := &domain.Alert{AlertID: "pnd#c1", ContactID: "c1"}
	newSubject := "changed"
	newTime := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	req := domain.EditAlertRequest{Subject: &newSubject, AlertTime: &newTime}

	alerts.On("Get", mock.Anything, "pnd#c1").Return(existing, nil)
	alerts.On("Update", mock.Anything, "pnd#c1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		at, ok := updates["alert_time"].(time.Time)
		return updates["subject"] == "changed" &&
			ok && at.Equal(newTime) &&
			updates["updt_by"] == "usr1"
	})).Return(nil)

	got, err := svc.Edit(context.Background(), "pnd#c1", req, testActor)

	require.NoError(t, err)
	assert.Equal(t, existing, got)
	alerts.AssertExpectations(t)
}

func TestEdit_NotFound(t *testing.T) {
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, time.Now())

	alerts.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.Edit(context.Background(), "missing", domain.EditAlertRequest{}, testActor)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	alerts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnooze_DeletesAlertAndAdvancesContact(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	a := &domain.Alert{
		AlertID:   "pnd#c1",
		ContactID: "c1",
		AlertTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	alerts.On("Get", mock.Anything, "pnd#c1").Return(a, nil)
	alerts.On("HardDelete", mock.Anything, "pnd#c1").Return(nil)
	contacts.On("Update", mock.Anything, "c1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		// 24h from the snooze action, not from the alert time
		next, ok := updates["next_alert"].(time.Time)
		return ok && next.Equal(now.Add(24*time.Hour))
	})).Return(nil)

	require.NoError(t, svc.Snooze(context.Background(), "pnd#c1", testActor))
	alerts.AssertExpectations(t)
	contacts.AssertExpectations(t)
}

func TestSnooze_NotFound(t *testing.T) {
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, time.Now())

	alerts.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := svc.Snooze(context.Background(), "missing", testActor)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	alerts.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestSnooze_RemovedAlertNotInFetchToday(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC)
	alerts := new(mockAlertStore)
	contacts := new(mockContactStore)
	svc := newTestService(alerts, contacts, now)

	a := &domain.Alert{AlertID: "pnd#c1", ContactID: "c1", AssignedTo: "usr1"}
	alerts.On("Get", mock.Anything, "pnd#c1").Return(a, nil)
	alerts.On("HardDelete", mock.Anything, "pnd#c1").Return(nil)
	contacts.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)
	require.NoError(t, svc.Snooze(context.Background(), "pnd#c1", testActor))

	alerts.On("ListDueForAssignee", mock.Anything, "usr1", mock.Anything, mock.Anything).Return([]domain.Alert{}, nil)

	got, err := svc.FetchToday(context.Background(), "usr1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
