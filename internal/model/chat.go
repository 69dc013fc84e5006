package model

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage rows are append-only. Messages sharing a SessionID form one conversation.
type ChatMessage struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Role      Role      `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	Intent    string    `db:"intent" json:"intent,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatSession is a read model assembled from ChatMessage rows.
type ChatSession struct {
	ID            string         `json:"session_id"`
	Messages      []*ChatMessage `json:"messages"`
	StartedAt     time.Time      `json:"started_at"`
	LastMessageAt time.Time      `json:"last_message_at"`
	Preview       string         `json:"preview"`
}
