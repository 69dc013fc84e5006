package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/metrics"
	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/repository"
	"github.com/templui/studyokr/internal/validation"
)

const PreviewLength = 50

type SessionMode string

const (
	// SessionModeConversation keeps one session id for a whole conversation.
	SessionModeConversation SessionMode = "conversation"
	// SessionModeExchange mints a new session id for every exchange.
	SessionModeExchange SessionMode = "exchange"
)

func (m SessionMode) Valid() bool {
	return m == SessionModeConversation || m == SessionModeExchange
}

// Exchange is one persisted user message and the assistant's reply to it.
type Exchange struct {
	SessionID string
	Message   *model.ChatMessage
	Reply     *model.ChatMessage
	Metadata  assistant.Metadata
}

type ChatService struct {
	repo        repository.ChatRepository
	goalService *GoalService
	responder   *assistant.Responder
	mode        SessionMode
	now         func() time.Time
}

func NewChatService(
	repo repository.ChatRepository,
	goalService *GoalService,
	responder *assistant.Responder,
	mode SessionMode,
) *ChatService {
	if !mode.Valid() {
		mode = SessionModeConversation
	}
	return &ChatService{
		repo:        repo,
		goalService: goalService,
		responder:   responder,
		mode:        mode,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ChatService) Mode() SessionMode {
	return s.mode
}

// Send answers text and stores both messages. sessionID may be empty to
// start a new conversation. Nothing is stored when an error is returned.
func (s *ChatService) Send(ctx context.Context, userID, sessionID, text string) (exchange *Exchange, err error) {
	text = strings.TrimSpace(text)
	err = validation.ValidateChatMessage(text)
	if err != nil {
		return nil, invalid("message", err)
	}

	goal, err := s.goalService.Goal(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessionID, err = s.sessionFor(sessionID)
	if err != nil {
		return nil, err
	}

	message, err := s.newMessage(userID, sessionID, model.RoleUser, text, "")
	if err != nil {
		return nil, err
	}

	reply := s.responder.Respond(text, goal)
	defer func() { metrics.RecordChatExchange(string(reply.Intent), metrics.Status(err)) }()

	answer, err := s.newMessage(userID, sessionID, model.RoleAssistant, reply.Text, string(reply.Intent))
	if err != nil {
		return nil, err
	}

	err = s.repo.AppendExchange(ctx, message, answer)
	if err != nil {
		return nil, transient("save chat message", err)
	}

	slog.InfoContext(ctx, "chat exchange", "user_id", userID, "session_id", sessionID, "intent", reply.Intent)

	return &Exchange{
		SessionID: sessionID,
		Message:   message,
		Reply:     answer,
		Metadata:  reply.Metadata,
	}, nil
}

// sessionFor keeps a well-formed client session id in conversation mode and
// mints a fresh one otherwise.
func (s *ChatService) sessionFor(sessionID string) (string, error) {
	if s.mode == SessionModeConversation && sessionID != "" {
		_, err := uuid.Parse(sessionID)
		if err == nil {
			return sessionID, nil
		}
	}
	return NewSessionID()
}

func NewSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return id.String(), nil
}

func (s *ChatService) newMessage(userID, sessionID string, role model.Role, content, intent string) (*model.ChatMessage, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}
	return &model.ChatMessage{
		ID:        id.String(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Intent:    intent,
		CreatedAt: s.now(),
	}, nil
}

// History returns the user's conversations, most recently active first.
func (s *ChatService) History(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	messages, err := s.repo.Messages(ctx, userID)
	if err != nil {
		return nil, transient("load chat history", err)
	}
	return GroupSessions(messages), nil
}

func (s *ChatService) Session(ctx context.Context, userID, sessionID string) (*model.ChatSession, error) {
	messages, err := s.repo.SessionMessages(ctx, userID, sessionID)
	if err != nil {
		return nil, transient("load chat session", err)
	}

	sessions := GroupSessions(messages)
	if len(sessions) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return sessions[0], nil
}

// GroupSessions groups messages by session id. Messages inside a session are
// in submission order and sessions are ordered by their latest message, newest
// first. The input order does not matter.
func GroupSessions(messages []*model.ChatMessage) []*model.ChatSession {
	byID := make(map[string]*model.ChatSession)
	var sessions []*model.ChatSession

	for _, m := range messages {
		session, ok := byID[m.SessionID]
		if !ok {
			session = &model.ChatSession{ID: m.SessionID}
			byID[m.SessionID] = session
			sessions = append(sessions, session)
		}
		session.Messages = append(session.Messages, m)
	}

	for _, session := range sessions {
		sort.SliceStable(session.Messages, func(i, j int) bool {
			a, b := session.Messages[i], session.Messages[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})

		session.StartedAt = session.Messages[0].CreatedAt
		session.LastMessageAt = session.Messages[len(session.Messages)-1].CreatedAt
		for _, m := range session.Messages {
			if m.Role == model.RoleUser {
				session.Preview = Preview(m.Content)
				break
			}
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.LastMessageAt.Equal(b.LastMessageAt) {
			return a.LastMessageAt.After(b.LastMessageAt)
		}
		return a.ID > b.ID
	})

	return sessions
}

// Preview truncates text to PreviewLength characters followed by "...".
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}
