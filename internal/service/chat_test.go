package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/db/dbtest"
	"github.com/templui/studyokr/internal/model"
)

func TestPreview(t *testing.T) {
	exact := strings.Repeat("a", PreviewLength)
	assert.Equal(t, exact, Preview(exact))
	assert.Equal(t, "short", Preview("short"))

	long := strings.Repeat("b", PreviewLength+1)
	got := Preview(long)
	assert.Equal(t, strings.Repeat("b", PreviewLength)+"...", got)

	wide := strings.Repeat("学", 60)
	assert.Equal(t, strings.Repeat("学", PreviewLength)+"...", Preview(wide))
}

func TestHistoryGroupsOneSessionPerExchange(t *testing.T) {
	f := newFixture(t, SessionModeExchange)
	ctx := context.Background()
	userID := dbtest.User(t, f.db, "alice@example.com")

	var sessionID string
	for _, text := range []string{"hello", "how to focus", "what is a heap"} {
		exchange, err := f.chat.Send(ctx, userID, sessionID, text)
		require.NoError(t, err)
		assert.NotEqual(t, sessionID, exchange.SessionID)
		sessionID = exchange.SessionID
	}

	sessions, err := f.chat.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	for _, session := range sessions {
		require.Len(t, session.Messages, 2)
		assert.Equal(t, model.RoleUser, session.Messages[0].Role)
		assert.Equal(t, model.RoleAssistant, session.Messages[1].Role)
	}
	assert.Equal(t, "what is a heap", sessions[0].Preview)
	assert.Equal(t, "hello", sessions[2].Preview)
}

func TestHistoryGroupsConversation(t *testing.T) {
	f := newFixture(t, SessionModeConversation)
	ctx := context.Background()
	userID := dbtest.User(t, f.db, "alice@example.com")

	first, err := f.chat.Send(ctx, userID, "", "hello")
	require.NoError(t, err)

	texts := []string{"how to focus", "what is a heap"}
	for _, text := range texts {
		exchange, err := f.chat.Send(ctx, userID, first.SessionID, text)
		require.NoError(t, err)
		assert.Equal(t, first.SessionID, exchange.SessionID)
	}

	sessions, err := f.chat.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	session := sessions[0]
	require.Len(t, session.Messages, 6)
	assert.Equal(t, "hello", session.Messages[0].Content)
	assert.Equal(t, "how to focus", session.Messages[2].Content)
	assert.Equal(t, "what is a heap", session.Messages[4].Content)
	assert.Equal(t, "hello", session.Preview)

	got, err := f.chat.Session(ctx, userID, first.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 6)
}

func TestSendIgnoresMalformedSessionID(t *testing.T) {
	f := newFixture(t, SessionModeConversation)
	userID := dbtest.User(t, f.db, "alice@example.com")

	exchange, err := f.chat.Send(context.Background(), userID, "not-a-uuid", "hello")
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", exchange.SessionID)
}

func TestSendRejectsInvalidMessages(t *testing.T) {
	f := newFixture(t, SessionModeConversation)
	ctx := context.Background()
	userID := dbtest.User(t, f.db, "alice@example.com")

	for _, text := range []string{"", "   ", strings.Repeat("x", 2001)} {
		_, err := f.chat.Send(ctx, userID, "", text)
		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	}

	sessions, err := f.chat.History(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionNotFound(t *testing.T) {
	f := newFixture(t, SessionModeConversation)
	ctx := context.Background()
	alice := dbtest.User(t, f.db, "alice@example.com")
	bob := dbtest.User(t, f.db, "bob@example.com")

	exchange, err := f.chat.Send(ctx, alice, "", "hello")
	require.NoError(t, err)

	_, err = f.chat.Session(ctx, bob, exchange.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupSessionsOrdering(t *testing.T) {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	msg := func(id, session string, role model.Role, offset time.Duration, content string) *model.ChatMessage {
		return &model.ChatMessage{ID: id, SessionID: session, Role: role, CreatedAt: base.Add(offset), Content: content}
	}

	// Newest first, as read from the store.
	messages := []*model.ChatMessage{
		msg("6", "a", model.RoleAssistant, 3*time.Hour, "late reply"),
		msg("5", "a", model.RoleUser, 3*time.Hour, "late question"),
		msg("4", "b", model.RoleAssistant, 2*time.Hour, "reply"),
		msg("3", "b", model.RoleUser, 2*time.Hour, strings.Repeat("q", 80)),
		msg("2", "a", model.RoleAssistant, time.Hour, "first reply"),
		msg("1", "a", model.RoleUser, time.Hour, "first question"),
	}

	sessions := GroupSessions(messages)
	require.Len(t, sessions, 2)

	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "first question", sessions[0].Preview)
	assert.Equal(t, base.Add(time.Hour), sessions[0].StartedAt)
	assert.Equal(t, base.Add(3*time.Hour), sessions[0].LastMessageAt)
	var order []string
	for _, m := range sessions[0].Messages {
		order = append(order, m.ID)
	}
	assert.Equal(t, []string{"1", "2", "5", "6"}, order)

	assert.Equal(t, "b", sessions[1].ID)
	assert.Equal(t, strings.Repeat("q", 50)+"...", sessions[1].Preview)

	assert.Empty(t, GroupSessions(nil))
}

// A learner sets the BST goal and asks for today's plan.
func TestEndToEndTaskPlan(t *testing.T) {
	f := newFixture(t, SessionModeConversation)
	ctx := context.Background()
	userID := dbtest.User(t, f.db, "alice@example.com")

	_, err := f.goals.Create(ctx, userID, GoalInput{
		Objective: "Master binary search trees and B+ tree indexing this quarter",
		KeyResults: []KeyResultInput{
			{Text: "Implement a BST from scratch"},
			{Text: "Explain B+ tree node splitting"},
		},
	})
	require.NoError(t, err)

	exchange, err := f.chat.Send(ctx, userID, "", "what should I do today")
	require.NoError(t, err)
	assert.Equal(t, string(assistant.IntentTask), exchange.Reply.Intent)
	assert.Equal(t, 2, exchange.Metadata.TaskCount)

	var lines []string
	for _, line := range strings.Split(exchange.Reply.Content, "\n") {
		if strings.Contains(line, "**Task ") {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Implement a BST from scratch")
	assert.Contains(t, lines[1], "Explain B+ tree node splitting")

	session, err := f.chat.Session(ctx, userID, exchange.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "what should I do today", session.Messages[0].Content)
	assert.Equal(t, exchange.Reply.Content, session.Messages[1].Content)
}
