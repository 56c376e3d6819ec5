package http

import (
	"net/http"
	"strconv"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/service"
)

type RecommendationHandler struct {
	recSvc service.RecommendationService
}

func NewRecommendationHandler(recSvc service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recSvc: recSvc}
}

func (h *RecommendationHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.recSvc.RecommendForUser(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type byNeedsRequest struct {
	Needs  string   `json:"needs"`
	Budget *float64 `json:"budget,omitempty"`
}

func (h *RecommendationHandler) ByNeeds(w http.ResponseWriter, r *http.Request) {
	var needs string
	var budget *float64

	if r.Method == http.MethodPost {
		var req byNeedsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		needs, budget = req.Needs, req.Budget
	} else {
		needs = r.URL.Query().Get("needs")
		if raw := r.URL.Query().Get("budget"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				respondError(w, domain.Validationf("invalid budget %q", raw))
				return
			}
			budget = &v
		}
	}

	result, err := h.recSvc.RecommendByNeeds(r.Context(), needs, budget)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
