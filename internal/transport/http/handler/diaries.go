package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/diary"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type DiaryHandler struct {
	entries diary.Service
}

func NewDiaryHandler(entries diary.Service) *DiaryHandler {
	return &DiaryHandler{entries: entries}
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.DiaryEntryInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	e, err := h.entries.Create(r.Context(), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.entries.Get(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.DiaryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.DiaryEntryInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	e, err := h.entries.Update(r.Context(), chi.URLParam(r, "entryID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.entries.Delete(r.Context(), chi.URLParam(r, "entryID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
