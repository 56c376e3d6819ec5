package http

import (
	"net/http"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/service"
)

type OwnershipHandler struct {
	ownershipSvc service.OwnershipService
}

func NewOwnershipHandler(ownershipSvc service.OwnershipService) *OwnershipHandler {
	return &OwnershipHandler{ownershipSvc: ownershipSvc}
}

type ownershipRequest struct {
	InstrumentID int32   `json:"instrument_id"`
	Condition    string  `json:"condition"`
	DailyRate    float64 `json:"daily_rate"`
	ImageURL     string  `json:"image_url"`
	Location     string  `json:"location"`
}

func (h *OwnershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ownershipRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ownership := &domain.Ownership{
		InstrumentID: req.InstrumentID,
		Condition:    domain.OwnershipCondition(req.Condition),
		DailyRate:    req.DailyRate,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
	}
	if err := h.ownershipSvc.AddOwnership(r.Context(), callerID(r), ownership); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ownership)
}

func (h *OwnershipHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	ownerships, err := h.ownershipSvc.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ownerships)
}

func (h *OwnershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	ownership, err := h.ownershipSvc.GetOwnership(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ownership)
}

func (h *OwnershipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerships, err := h.ownershipSvc.ListMyInstruments(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ownerships)
}

func (h *OwnershipHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ownershipRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ownership := &domain.Ownership{
		ID:        id,
		Condition: domain.OwnershipCondition(req.Condition),
		DailyRate: req.DailyRate,
		ImageURL:  req.ImageURL,
		Location:  req.Location,
	}
	if err := h.ownershipSvc.UpdateOwnership(r.Context(), callerID(r), ownership); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ownership)
}

func (h *OwnershipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.ownershipSvc.DeleteOwnership(r.Context(), callerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
