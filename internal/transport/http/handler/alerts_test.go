package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
)

type mockAlertService struct{ mock.Mock }

func (m *mockAlertService) Reconcile(ctx context.Context, c *domain.Contact, actor domain.Actor) error {
	return m.Called(ctx, c, actor).Error(0)
}

func (m *mockAlertService) CascadeDelete(ctx context.Context, contactID string, actor domain.Actor) error {
	return m.Called(ctx, contactID, actor).Error(0)
}

func (m *mockAlertService) SweepOnce(ctx context.Context, now time.Time) domain.SweepResult {
	return m.Called(ctx, now).Get(0).(domain.SweepResult)
}

func (m *mockAlertService) FetchToday(ctx context.Context, assignee string) ([]domain.Alert, error) {
	args := m.Called(ctx, assignee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *mockAlertService) Edit(ctx context.Context, alertID string, req domain.EditAlertRequest, actor domain.Actor) (*domain.Alert, error) {
	args := m.Called(ctx, alertID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *mockAlertService) Snooze(ctx context.Context, alertID string, actor domain.Actor) error {
	return m.Called(ctx, alertID, actor).Error(0)
}

func newAlertRouter(svc *mockAlertService) http.Handler {
	h := NewAlertHandler(svc, clock.Fixed{T: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)})
	r := chi.NewRouter()
	r.Get("/alerts/today", h.Today)
	r.Patch("/alerts/{alertID}", h.Edit)
	r.Post("/alerts/{alertID}/snooze", h.Snooze)
	r.Post("/alerts/sweep", h.RunSweep)
	return r
}

func TestAlertToday_ReturnsAlertsWithCount(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("FetchToday", mock.Anything, mock.Anything).Return([]domain.Alert{
		{AlertID: "pnd#c1", ContactID: "c1", Subject: "call Asha"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/alerts/today", nil)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Alerts []domain.Alert `json:"alerts"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "call Asha", body.Alerts[0].Subject)
}

func TestAlertToday_EmptyListNotNull(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("FetchToday", mock.Anything, mock.Anything).Return([]domain.Alert(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/alerts/today", nil)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alerts":[]`)
}

func TestAlertEdit_PatchesSubject(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("Edit", mock.Anything, "a1", mock.MatchedBy(func(req domain.EditAlertRequest) bool {
		return req.Subject != nil && *req.Subject == "changed"
	}), mock.Anything).Return(&domain.Alert{AlertID: "a1", Subject: "changed"}, nil)

	body := bytes.NewBufferString(`{"subject":"changed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/alerts/a1", body)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "changed")
}

func TestAlertSnooze_NotFoundMapsTo404(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("Snooze", mock.Anything, "missing", mock.Anything).Return(domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/alerts/missing/snooze", nil)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertSnooze_OK(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("Snooze", mock.Anything, "a1", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/alerts/a1/snooze", nil)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "snoozed")
}

func TestAlertRunSweep_ReturnsResult(t *testing.T) {
	svc := new(mockAlertService)
	svc.On("SweepOnce", mock.Anything, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)).
		Return(domain.SweepResult{Scanned: 3, Created: 2, Errors: 1})

	req := httptest.NewRequest(http.MethodPost, "/alerts/sweep", nil)
	rec := httptest.NewRecorder()
	newAlertRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res domain.SweepResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.SweepResult{Scanned: 3, Created: 2, Errors: 1}, res)
}
