package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"instrument-rental-backend/internal/assistant"
	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/repository"
)

const historyTurns = 10

const chatPrompt = `You are a knowledgeable and friendly chatbot assistant for a musical instruments rental platform.
Your role is to:
1. Answer questions about musical instruments, music, and music learning
2. Recommend instruments based on user preferences, experience level, and budget
3. Provide helpful advice about instrument care and playing tips
4. Help users navigate the rental platform

Be conversational, friendly, and encouraging. Always provide accurate information about instruments.
Do not make up information about instruments or music that isn't accurate.
If you don't know something, be honest and suggest how the user might find the information.

IMPORTANT: If you're recommending instruments, provide specific, actionable suggestions based on the user's profile.

Conversation History: %s

User Profile Information:
- Experience Level: %s
- Preferred Instruments: %s
- Favorite Genres: %s
- Budget Range: %s
- Rental Frequency: %s
- Use Case: %s

Available Instruments in Our System:
%s

User Question: %s

Provide a helpful, friendly response. If recommending instruments, suggest specific ones from our available inventory.
If you recommend instruments, end your response with a JSON block in this format:
[RECOMMENDATIONS]
{"recommendations": [
    {"name": "Instrument Name", "reason": "Why this is good for you"},
    ...
]}
[/RECOMMENDATIONS]

Assistant Response:
`

type chatbotService struct {
	chatRepo      repository.ChatRepository
	surveyRepo    repository.SurveyRepository
	ownershipRepo repository.OwnershipRepository
	model         assistant.Model
}

// NewChatbotService wires the conversational assistant. The model client is
// injected once at startup; there is no lazy global.
func NewChatbotService(
	chatRepo repository.ChatRepository,
	surveyRepo repository.SurveyRepository,
	ownershipRepo repository.OwnershipRepository,
	model assistant.Model,
) ChatbotService {
	return &chatbotService{
		chatRepo:      chatRepo,
		surveyRepo:    surveyRepo,
		ownershipRepo: ownershipRepo,
		model:         model,
	}
}

func (s *chatbotService) Chat(ctx context.Context, userID int32, sessionID, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.Validationf("message is required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if s.model == nil {
		return nil, domain.Internal(errors.New("assistant model is not configured"))
	}

	profile := s.loadProfile(ctx, userID)
	instruments := s.availableInstrumentsText(ctx)
	history := s.conversationHistory(ctx, userID, sessionID)

	prompt := fmt.Sprintf(chatPrompt,
		history,
		profile["experience_level"],
		profile["preferred_instruments"],
		profile["favorite_genres"],
		profile["budget_range"],
		profile["rental_frequency"],
		profile["use_case"],
		instruments,
		message,
	)

	response, err := s.model.Generate(ctx, prompt)
	if err != nil {
		logger.Error("assistant generation failed", "session_id", sessionID, "error", err)
		return nil, domain.Internal(fmt.Errorf("assistant unavailable: %w", err))
	}

	recommendations := extractRecommendations(response)
	clean := strings.TrimSpace(strings.SplitN(response, "[RECOMMENDATIONS]", 2)[0])

	userMsg := &domain.ChatMessage{
		UserID:      userID,
		SessionID:   sessionID,
		MessageType: domain.ChatMessageTypeUser,
		Content:     message,
		ContextData: map[string]any{"profile": profile},
	}
	if err := s.chatRepo.Create(ctx, userMsg); err != nil {
		return nil, domain.Internal(err)
	}

	assistantMsg := &domain.ChatMessage{
		UserID:      userID,
		SessionID:   sessionID,
		MessageType: domain.ChatMessageTypeAssistant,
		Content:     clean,
	}
	if len(recommendations) > 0 {
		assistantMsg.ContextData = map[string]any{"recommendations": recommendations}
	}
	if err := s.chatRepo.Create(ctx, assistantMsg); err != nil {
		return nil, domain.Internal(err)
	}

	return &ChatReply{
		SessionID:       sessionID,
		Response:        clean,
		Recommendations: recommendations,
	}, nil
}

func (s *chatbotService) AskInstrumentQuestion(ctx context.Context, userID int32, sessionID, question string) (*ChatReply, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.Validationf("question is required")
	}
	return s.Chat(ctx, userID, sessionID, "Regarding musical instruments: "+question)
}

func (s *chatbotService) RecommendForMe(ctx context.Context, userID int32, sessionID, preference string) (*ChatReply, error) {
	if strings.TrimSpace(preference) == "" {
		preference = "Consider my experience level, budget, and preferred genres."
	}
	prompt := fmt.Sprintf(`Based on my profile, can you recommend instruments that would be perfect for me?
%s
Please suggest 3-5 specific instruments from your available inventory that match my profile.`, preference)
	return s.Chat(ctx, userID, sessionID, prompt)
}

func (s *chatbotService) History(ctx context.Context, userID int32, sessionID string) ([]domain.ChatMessage, error) {
	messages, err := s.chatRepo.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if len(messages) == 0 {
		return nil, domain.NotFoundf("no conversation history for session %s", sessionID)
	}
	return messages, nil
}

func (s *chatbotService) Sessions(ctx context.Context, userID int32) ([]domain.ChatSession, error) {
	sessions, err := s.chatRepo.ListSessions(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return sessions, nil
}

func (s *chatbotService) ClearSession(ctx context.Context, userID int32, sessionID string) (int32, error) {
	deleted, err := s.chatRepo.DeleteSession(ctx, userID, sessionID)
	if err != nil {
		return 0, domain.Internal(err)
	}
	return deleted, nil
}

func (s *chatbotService) loadProfile(ctx context.Context, userID int32) map[string]string {
	profile := map[string]string{
		"experience_level":      "beginner",
		"preferred_instruments": "Not specified",
		"favorite_genres":       "Not specified",
		"budget_range":          "Not specified",
		"rental_frequency":      "Not specified",
		"use_case":              "Not specified",
	}

	survey, err := s.surveyRepo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("failed to load survey for chat context", "user_id", userID, "error", err)
		}
		return profile
	}

	set := func(key, val string) {
		if val != "" {
			profile[key] = val
		}
	}
	set("experience_level", survey.ExperienceLevel)
	set("preferred_instruments", survey.PreferredInstruments)
	set("favorite_genres", survey.FavoriteGenres)
	set("budget_range", survey.BudgetRange)
	set("rental_frequency", survey.RentalFrequency)
	set("use_case", survey.UseCase)
	return profile
}

func (s *chatbotService) availableInstrumentsText(ctx context.Context) string {
	listings, err := s.ownershipRepo.ListAvailableListings(ctx)
	if err != nil {
		logger.Warn("failed to load listings for chat context", "error", err)
		return "Available instruments data unavailable"
	}
	if len(listings) == 0 {
		return "No instruments currently available for rent."
	}

	var b strings.Builder
	b.WriteString("Available Instruments:\n")
	// Cap the inventory block to keep the prompt within context limits.
	limit := len(listings)
	if limit > 15 {
		limit = 15
	}
	for _, l := range listings[:limit] {
		fmt.Fprintf(&b, "- %s (%s): $%.2f/day, %s condition\n",
			l.Instrument.Name, l.Instrument.Category, l.DailyRate, l.Condition)
	}
	if len(listings) > limit {
		fmt.Fprintf(&b, "... and %d more instruments", len(listings)-limit)
	}
	return b.String()
}

func (s *chatbotService) conversationHistory(ctx context.Context, userID int32, sessionID string) string {
	messages, err := s.chatRepo.ListRecentBySession(ctx, userID, sessionID, historyTurns)
	if err != nil || len(messages) == 0 {
		return "No previous conversation history"
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		role := "User"
		if msg.MessageType == domain.ChatMessageTypeAssistant {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func extractRecommendations(response string) []map[string]any {
	start := strings.Index(response, "[RECOMMENDATIONS]")
	end := strings.Index(response, "[/RECOMMENDATIONS]")
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	jsonStr := strings.TrimSpace(response[start+len("[RECOMMENDATIONS]") : end])

	var parsed struct {
		Recommendations []map[string]any `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		logger.Warn("failed to parse assistant recommendations block", "error", err)
		return nil
	}
	return parsed.Recommendations
}
