package http

import (
	"net/http"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/service"
)

type InstrumentHandler struct {
	instrumentSvc service.InstrumentService
}

func NewInstrumentHandler(instrumentSvc service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instrumentSvc: instrumentSvc}
}

type instrumentRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *InstrumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req instrumentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	instrument := &domain.Instrument{
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		Model:       req.Model,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.instrumentSvc.AddInstrument(r.Context(), instrument); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, instrument)
}

func (h *InstrumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	instrument, err := h.instrumentSvc.GetInstrument(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instrument)
}

func (h *InstrumentHandler) List(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.instrumentSvc.ListInstruments(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instruments)
}

func (h *InstrumentHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	ownerships, err := h.instrumentSvc.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ownerships)
}
