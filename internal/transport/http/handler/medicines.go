package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-crm-api/internal/application/medicine"
	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type MedicineHandler struct {
	medicines medicine.Service
}

func NewMedicineHandler(medicines medicine.Service) *MedicineHandler {
	return &MedicineHandler{medicines: medicines}
}

func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.MedicineInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	m, err := h.medicines.Create(r.Context(), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (h *MedicineHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.medicines.Get(r.Context(), chi.URLParam(r, "medicineID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.medicines.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.MedicineInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())
	m, err := h.medicines.Update(r.Context(), chi.URLParam(r, "medicineID"), req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	if err := h.medicines.Delete(r.Context(), chi.URLParam(r, "medicineID"), actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
