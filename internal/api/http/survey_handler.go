package http

import (
	"net/http"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/service"
)

type SurveyHandler struct {
	surveySvc service.SurveyService
}

func NewSurveyHandler(surveySvc service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

type surveyRequest struct {
	PreferredInstruments string `json:"preferred_instruments"`
	ExperienceLevel      string `json:"experience_level"`
	FavoriteGenres       string `json:"favorite_genres"`
	BudgetRange          string `json:"budget_range"`
	RentalFrequency      string `json:"rental_frequency"`
	UseCase              string `json:"use_case"`
	Location             string `json:"location"`
	AdditionalNotes      string `json:"additional_notes"`
}

func (r surveyRequest) toDomain() *domain.SurveyResponse {
	return &domain.SurveyResponse{
		PreferredInstruments: r.PreferredInstruments,
		ExperienceLevel:      r.ExperienceLevel,
		FavoriteGenres:       r.FavoriteGenres,
		BudgetRange:          r.BudgetRange,
		RentalFrequency:      r.RentalFrequency,
		UseCase:              r.UseCase,
		Location:             r.Location,
		AdditionalNotes:      r.AdditionalNotes,
	}
}

func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	survey := req.toDomain()
	if err := h.surveySvc.SubmitSurvey(r.Context(), callerID(r), survey); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, survey)
}

func (h *SurveyHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.GetMySurvey(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, survey)
}

func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	survey, err := h.surveySvc.UpdateSurvey(r.Context(), callerID(r), req.toDomain())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, survey)
}

func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.DeleteSurvey(r.Context(), callerID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
