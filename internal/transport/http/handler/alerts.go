package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/alert"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type AlertHandler struct {
	alerts alert.Service
	clock  clock.Clock
}

func NewAlertHandler(alerts alert.Service, clk clock.Clock) *AlertHandler {
	return &AlertHandler{alerts: alerts, clock: clk}
}

// Today lists the caller's pending alerts due in the current local day.
func (h *AlertHandler) Today(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	alerts, err := h.alerts.FetchToday(r.Context(), actor.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (h *AlertHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req domain.EditAlertRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	a, err := h.alerts.Edit(r.Context(), chi.URLParam(r, "alertID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *AlertHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.alerts.Snooze(r.Context(), chi.URLParam(r, "alertID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "snoozed"})
}

// RunSweep triggers one sweep pass outside the schedule. Admin only; handy
// after restoring data or fixing a bad deploy.
func (h *AlertHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	res := h.alerts.SweepOnce(r.Context(), h.clock.Now())
	respondJSON(w, http.StatusOK, res)
}
