package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type chatRepository struct {
	db dbtx
}

func NewChatRepository(db dbtx) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	// context_data is JSONB: new context keys need no schema change
	var contextData any
	if m.ContextData != nil {
		b, err := json.Marshal(m.ContextData)
		if err != nil {
			return err
		}
		contextData = b
	}

	query := `INSERT INTO chat_messages (user_id, session_id, message_type, content, context_data, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	m.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, m.UserID, m.SessionID, m.MessageType, m.Content, contextData, m.CreatedOn).Scan(&m.ID)
}

func (r *chatRepository) listMessages(ctx context.Context, query string, args ...any) ([]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var contextData sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.MessageType, &m.Content, &contextData, &m.CreatedOn); err != nil {
			return nil, err
		}
		if contextData.Valid && contextData.String != "" {
			_ = json.Unmarshal([]byte(contextData.String), &m.ContextData)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *chatRepository) ListBySession(ctx context.Context, userID int32, sessionID string) ([]domain.ChatMessage, error) {
	query := `SELECT id, user_id, session_id, message_type, content, context_data, created_on
	          FROM chat_messages WHERE user_id = $1 AND session_id = $2 ORDER BY created_on ASC`
	return r.listMessages(ctx, query, userID, sessionID)
}

func (r *chatRepository) ListRecentBySession(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error) {
	// Most recent messages, then rewind to chronological order
	query := `SELECT id, user_id, session_id, message_type, content, context_data, created_on
	          FROM (SELECT id, user_id, session_id, message_type, content, context_data, created_on
	                FROM chat_messages WHERE user_id = $1 AND session_id = $2
	                ORDER BY created_on DESC LIMIT $3) recent
	          ORDER BY created_on ASC`
	return r.listMessages(ctx, query, userID, sessionID, limit)
}

func (r *chatRepository) ListSessions(ctx context.Context, userID int32) ([]domain.ChatSession, error) {
	query := `SELECT session_id, MIN(created_on), MAX(created_on), COUNT(*)
	          FROM chat_messages WHERE user_id = $1
	          GROUP BY session_id ORDER BY MAX(created_on) DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var s domain.ChatSession
		if err := rows.Scan(&s.SessionID, &s.StartedOn, &s.LastMessageOn, &s.MessageCount); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *chatRepository) DeleteSession(ctx context.Context, userID int32, sessionID string) (int32, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = $1 AND session_id = $2`, userID, sessionID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int32(affected), err
}
