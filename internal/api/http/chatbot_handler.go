package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"instrument-rental-backend/internal/service"
)

type ChatbotHandler struct {
	chatSvc service.ChatbotService
}

func NewChatbotHandler(chatSvc service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatSvc: chatSvc}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *ChatbotHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reply, err := h.chatSvc.Chat(r.Context(), callerID(r), req.SessionID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (h *ChatbotHandler) AskInstrumentQuestion(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reply, err := h.chatSvc.AskInstrumentQuestion(r.Context(), callerID(r), req.SessionID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (h *ChatbotHandler) RecommendForMe(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reply, err := h.chatSvc.RecommendForMe(r.Context(), callerID(r), req.SessionID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (h *ChatbotHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]
	messages, err := h.chatSvc.History(r.Context(), callerID(r), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func (h *ChatbotHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chatSvc.Sessions(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (h *ChatbotHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]
	deleted, err := h.chatSvc.ClearSession(r.Context(), callerID(r), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"deleted_messages": deleted})
}
