package handler

import (
	"errors"
	"net/http"

	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/pages"
)

type ChatHandler struct {
	chatService *service.ChatService
	goalService *service.GoalService
}

func NewChatHandler(chatService *service.ChatService, goalService *service.GoalService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		goalService: goalService,
	}
}

// ChatPage opens a new conversation, or continues the one named by the
// session query parameter in conversation mode.
func (h *ChatHandler) ChatPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.Goal(r.Context(), user.ID)
	if err != nil {
		pageError(w, r, "load goal", err, "user_id", user.ID)
		return
	}

	view := pages.ChatView{Goal: goal}

	sessionID := r.URL.Query().Get("session")
	if sessionID != "" && h.chatService.Mode() == service.SessionModeConversation {
		session, err := h.chatService.Session(r.Context(), user.ID, sessionID)
		if errors.Is(err, service.ErrNotFound) {
			http.Redirect(w, r, "/app/chat", http.StatusSeeOther)
			return
		}
		if err != nil {
			pageError(w, r, "load conversation", err, "user_id", user.ID, "session_id", sessionID)
			return
		}
		view.SessionID = session.ID
		view.Messages = session.Messages
	}

	if len(view.Messages) == 0 {
		view.Welcome = assistant.Welcome(goal)
		view.Suggestions = assistant.Suggestions(goal)
	}

	ui.Render(w, r, pages.Chat(view))
}

// Send answers one message. The response is appended to the transcript.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	exchange, err := h.chatService.Send(r.Context(), user.ID, r.FormValue("session_id"), r.FormValue("message"))
	if err != nil {
		w.Header().Set("HX-Reswap", "none")
		fail(w, r, "send chat message", err, "user_id", user.ID)
		return
	}

	ui.Render(w, r, pages.ChatExchange(exchange.Message, exchange.Reply))
}

// NewChat drops the current conversation. Sessions only exist once a
// message is stored, so a fresh page is all that is needed.
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	ui.Redirect(w, r, "/app/chat")
}
