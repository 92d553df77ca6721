package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/quote"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type QuoteHandler struct {
	quotes quote.Service
}

func NewQuoteHandler(quotes quote.Service) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	q, err := h.quotes.Create(r.Context(), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, q)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Get(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page, _ := strconv.Atoi(params.Get("page"))
	result, err := h.quotes.List(r.Context(), domain.QuoteListQuery{
		Page:     page,
		Category: params.Get("category"),
		Search:   params.Get("search"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	q, err := h.quotes.Update(r.Context(), chi.URLParam(r, "quoteID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.quotes.Delete(r.Context(), chi.URLParam(r, "quoteID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
