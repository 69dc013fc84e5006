package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studyokr/internal/model"
)

// ChatRepository orders messages by created_at, then by id. Callers must mint
// time-ordered ids (uuid v7) so rows sharing a timestamp keep submission order.
type ChatRepository interface {
	// AppendExchange writes the user message and the assistant reply together.
	AppendExchange(ctx context.Context, messages ...*model.ChatMessage) error
	// Messages returns every message the user owns, newest first.
	Messages(ctx context.Context, userID string) ([]*model.ChatMessage, error)
	SessionMessages(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error)
	CountMessages(ctx context.Context, userID string) (int, error)
	CountSessions(ctx context.Context, userID string) (int, error)
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) AppendExchange(ctx context.Context, messages ...*model.ChatMessage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO chat_messages (id, user_id, session_id, role, content, intent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, m := range messages {
		_, err := tx.ExecContext(ctx, query, m.ID, m.UserID, m.SessionID, m.Role, m.Content, m.Intent, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert %s message: %w", m.Role, err)
		}
	}

	return tx.Commit()
}

func (r *chatRepository) Messages(ctx context.Context, userID string) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	query := `SELECT * FROM chat_messages WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *chatRepository) SessionMessages(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	query := `SELECT * FROM chat_messages WHERE user_id = $1 AND session_id = $2 ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &messages, query, userID, sessionID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *chatRepository) CountMessages(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chat_messages WHERE user_id = $1`, userID)
	return count, err
}

func (r *chatRepository) CountSessions(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(DISTINCT session_id) FROM chat_messages WHERE user_id = $1`, userID)
	return count, err
}
