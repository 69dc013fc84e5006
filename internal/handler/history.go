package handler

import (
	"errors"
	"net/http"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/pages"
)

type HistoryHandler struct {
	chatService *service.ChatService
}

func NewHistoryHandler(chatService *service.ChatService) *HistoryHandler {
	return &HistoryHandler{
		chatService: chatService,
	}
}

func (h *HistoryHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sessions, err := h.chatService.History(r.Context(), user.ID)
	if err != nil {
		pageError(w, r, "load history", err, "user_id", user.ID)
		return
	}

	ui.Render(w, r, pages.History(sessions))
}

func (h *HistoryHandler) SessionPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	sessionID := r.PathValue("session")

	session, err := h.chatService.Session(r.Context(), user.ID, sessionID)
	if errors.Is(err, service.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		ui.Render(w, r, pages.NotFound())
		return
	}
	if err != nil {
		pageError(w, r, "load conversation", err, "user_id", user.ID, "session_id", sessionID)
		return
	}

	canContinue := h.chatService.Mode() == service.SessionModeConversation
	ui.Render(w, r, pages.HistoryDetail(session, canContinue))
}
