package http

import (
	"net/http"

	"instrument-rental-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		respondError(w, err)
		return
	}

	initiation, err := h.paymentSvc.InitiatePayment(r.Context(), callerID(r), rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, initiation)
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.paymentSvc.ConfirmPayment(r.Context(), callerID(r), rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.paymentSvc.RefundPayment(r.Context(), callerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.paymentSvc.GetPayment(r.Context(), callerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentSvc.ListMyPayments(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
