package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatPageWelcome(t *testing.T) {
	f := newFixture(t)
	h := NewChatHandler(f.chat, f.goals)

	rec := httptest.NewRecorder()
	h.ChatPage(rec, f.request(http.MethodGet, "/app/chat", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "study assistant")
	assert.Contains(t, body, `id="chat-suggestions"`)
	assert.Contains(t, body, `href="/app/goal/new"`)
	assert.Contains(t, body, `hx-sync="this:drop"`)
}

func TestChatSend(t *testing.T) {
	f := newFixture(t)
	f.createGoal(t)
	h := NewChatHandler(f.chat, f.goals)

	rec := httptest.NewRecorder()
	h.Send(rec, htmx(f.request(http.MethodPost, "/app/chat", url.Values{"message": {"what should I do today? <b>now</b>"}})))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "&lt;b&gt;now&lt;/b&gt;")
	assert.NotContains(t, body, "<b>now</b>")
	assert.Contains(t, body, `data-role="assistant"`)
	assert.Contains(t, body, "Implement a BST from scratch")
	assert.Contains(t, body, `hx-swap-oob="true"`)

	sessions, err := f.chat.History(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Contains(t, body, `value="`+sessions[0].ID+`"`)

	t.Run("conversation continues in the same session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		form := url.Values{"message": {"show my progress"}, "session_id": {sessions[0].ID}}
		h.Send(rec, htmx(f.request(http.MethodPost, "/app/chat", form)))
		assert.Contains(t, rec.Body.String(), "not yet tracked")

		all, err := f.chat.History(context.Background(), f.user.ID)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Messages, 4)
	})

	t.Run("continued page shows the transcript", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ChatPage(rec, f.request(http.MethodGet, "/app/chat?session="+sessions[0].ID, nil))

		body := rec.Body.String()
		assert.Contains(t, body, "show my progress")
		assert.NotContains(t, body, `id="chat-suggestions"`)
	})

	t.Run("unknown session starts over", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ChatPage(rec, f.request(http.MethodGet, "/app/chat?session=0190a0b0-0000-7000-8000-000000000000", nil))
		assert.Equal(t, "/app/chat", rec.Header().Get("Location"))
	})
}

func TestChatSendRejectsEmptyMessage(t *testing.T) {
	f := newFixture(t)
	h := NewChatHandler(f.chat, f.goals)

	rec := httptest.NewRecorder()
	h.Send(rec, htmx(f.request(http.MethodPost, "/app/chat", url.Values{"message": {"   "}})))

	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "message is required")
	assert.Contains(t, rec.Body.String(), `hx-swap-oob="beforeend:#toast-container"`)

	count, err := f.chat.History(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, count)
}

func TestNewChatRedirects(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	NewChatHandler(f.chat, f.goals).NewChat(rec, htmx(f.request(http.MethodPost, "/app/chat/new", url.Values{})))

	assert.Equal(t, "/app/chat", rec.Header().Get("HX-Redirect"))
}
