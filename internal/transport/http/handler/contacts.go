package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/contact"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

const maxAudioUploadBytes = 20 << 20 // 20 MiB

type ContactHandler struct {
	contacts contact.Service
}

func NewContactHandler(contacts contact.Service) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	c, err := h.contacts.Create(r.Context(), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	c, err := h.contacts.Get(r.Context(), chi.URLParam(r, "contactID"), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	c, err := h.contacts.Update(r.Context(), chi.URLParam(r, "contactID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.contacts.Delete(r.Context(), chi.URLParam(r, "contactID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	actor, _ := middleware.ActorFromContext(r.Context())
	result, err := h.contacts.List(r.Context(), domain.ContactListQuery{
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	}, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AttachAudio accepts a multipart upload under the "audio" field.
func (h *ContactHandler) AttachAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		respondError(w, domain.ErrBadRequest)
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		respondError(w, domain.ErrBadRequest)
		return
	}
	defer file.Close()

	actor, _ := middleware.ActorFromContext(r.Context())
	ref, err := h.contacts.AttachAudio(r.Context(), chi.URLParam(r, "contactID"), header.Filename, file, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ref)
}
