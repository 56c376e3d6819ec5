package http

import (
	"net/http"
	"strconv"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type reviewRequest struct {
	RentalID int32  `json:"rental_id"`
	Rating   int32  `json:"rating"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewSvc.CreateReview(r.Context(), callerID(r), req.RentalID, req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewSvc.GetReview(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	var ownershipID, rating int32
	if raw := r.URL.Query().Get("ownership_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			respondError(w, domain.Validationf("invalid ownership_id %q", raw))
			return
		}
		ownershipID = int32(v)
	}
	if raw := r.URL.Query().Get("rating"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			respondError(w, domain.Validationf("invalid rating %q", raw))
			return
		}
		rating = int32(v)
	}

	reviews, err := h.reviewSvc.ListReviews(r.Context(), ownershipID, rating)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) ListForOwnership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, err := h.reviewSvc.ListReviews(r.Context(), id, 0)
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.reviewSvc.OwnershipStats(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"stats":   stats,
	})
}

func (h *ReviewHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, err := h.reviewSvc.ListOwnerReviews(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

type reviewUpdateRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewSvc.UpdateReview(r.Context(), callerID(r), id, req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.reviewSvc.DeleteReview(r.Context(), callerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
