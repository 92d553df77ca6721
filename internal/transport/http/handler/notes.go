package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/note"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type NoteHandler struct {
	notes note.Service
}

func NewNoteHandler(notes note.Service) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	n, err := h.notes.Create(r.Context(), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.notes.Get(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	n, err := h.notes.Update(r.Context(), chi.URLParam(r, "noteID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.notes.Delete(r.Context(), chi.URLParam(r, "noteID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
