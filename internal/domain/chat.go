package domain

import "time"

type ChatMessageType string

const (
	ChatMessageTypeUser      ChatMessageType = "user"
	ChatMessageTypeAssistant ChatMessageType = "assistant"
)

// ChatMessage is an append-only log entry for one conversational turn,
// grouped by session ID. ContextData is schema-less on purpose: new context
// keys must not require a migration.
type ChatMessage struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"-"`
	SessionID   string          `json:"session_id,omitempty"`
	MessageType ChatMessageType `json:"message_type"`
	Content     string          `json:"content"`
	ContextData map[string]any  `json:"context_data,omitempty"`
	CreatedOn   time.Time       `json:"created_on"`
}

// ChatSession summarizes one conversation for the session list view.
type ChatSession struct {
	SessionID     string    `json:"session_id"`
	StartedOn     time.Time `json:"started_at"`
	LastMessageOn time.Time `json:"last_message_at"`
	MessageCount  int32     `json:"message_count"`
}
