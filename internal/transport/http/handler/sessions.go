package handler

import (
	"net/http"

	"github.com/go-crm-api/internal/application/session"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type SessionHandler struct {
	sessions session.Service
}

func NewSessionHandler(sessions session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	tokens, err := h.sessions.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokens)
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	tokens, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokens)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.sessions.Logout(r.Context(), sessionID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}
	sess, err := h.sessions.Current(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}
