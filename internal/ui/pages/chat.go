package pages

import (
	"context"
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/components/form"
	"github.com/templui/studyokr/internal/ui/layouts"
	"github.com/templui/studyokr/internal/validation"
)

type ChatView struct {
	Goal        *model.LearningGoal
	SessionID   string // empty until the first message is stored
	Messages    []*model.ChatMessage
	Welcome     string
	Suggestions []string
}

func Chat(v ChatView) templ.Component {
	return layouts.Base("Assistant", ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Raw(`<div class="flex h-[75vh] flex-col rounded-lg border border-gray-200 bg-white">`)

		w.Raw(`<div class="flex items-center justify-between border-b border-gray-100 px-4 py-3"><div>`)
		w.Raw(`<h1 class="font-semibold">Study assistant</h1><p class="text-xs text-gray-500">`)
		if v.Goal != nil {
			w.Text("Goal: " + v.Goal.Objective)
		} else {
			w.Raw(`No goal yet · <a href="/app/goal/new" class="text-indigo-600 hover:underline">create one</a>`)
		}
		w.Raw(`</p></div>`)
		w.Raw(`<form method="post" action="/app/chat/new">`)
		w.Render(ctx, form.CSRF())
		w.Raw(`<button type="submit" class="rounded-md border border-gray-300 px-3 py-1 text-sm hover:bg-gray-50">New chat</button></form>`)
		w.Raw(`</div>`)

		w.Raw(`<div id="chat-transcript" class="flex-1 space-y-4 overflow-y-auto p-4"><div id="chat-messages" class="space-y-4">`)
		if v.Welcome != "" {
			w.Render(ctx, bubble(model.RoleAssistant, v.Welcome))
		}
		for _, m := range v.Messages {
			w.Render(ctx, bubble(m.Role, m.Content))
		}
		w.Raw(`</div></div>`)

		if len(v.Messages) == 0 && len(v.Suggestions) > 0 {
			w.Raw(`<div id="chat-suggestions" class="flex flex-wrap gap-2 border-t border-gray-100 px-4 py-3">`)
			for _, s := range v.Suggestions {
				w.Raw(`<button type="button" class="rounded-full border border-indigo-200 bg-indigo-50 px-3 py-1 text-xs text-indigo-700 hover:bg-indigo-100" hx-post="/app/chat" hx-target="#chat-messages" hx-swap="beforeend" hx-include="#session-id"`)
				w.Rawf(` hx-vals='{"message": %s}'>`, ui.Esc(jsonString(s)))
				w.Text(s)
				w.Raw(`</button>`)
			}
			w.Raw(`</div>`)
		}

		w.Raw(`<form id="chat-form" class="flex gap-2 border-t border-gray-100 p-4" hx-post="/app/chat" hx-target="#chat-messages" hx-swap="beforeend" hx-sync="this:drop" hx-disabled-elt="find textarea, find button">`)
		w.Render(ctx, SessionField(v.SessionID, false))
		w.Rawf(`<textarea name="message" rows="2" maxlength="%d" required placeholder="Ask about your tasks, progress or any topic..." class="flex-1 resize-none rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-indigo-500 focus:outline-none"></textarea>`, validation.MaxChatMessageLength)
		w.Raw(`<button type="submit" class="rounded-md bg-indigo-600 px-4 text-sm text-white hover:bg-indigo-700 disabled:opacity-50">Send</button>`)
		w.Raw(`</form></div>`)
	}))
}

// SessionField carries the conversation id between posts. The oob variant
// replaces the field after the server assigned or rotated the session.
func SessionField(sessionID string, oob bool) templ.Component {
	return ui.Component(func(_ context.Context, w *ui.Writer) {
		w.Rawf(`<input type="hidden" id="session-id" name="session_id" value="%s"`, ui.Esc(sessionID))
		if oob {
			w.Raw(` hx-swap-oob="true"`)
		}
		w.Raw(`/>`)
	})
}

// ChatExchange is appended to the transcript after a message was answered.
func ChatExchange(message, reply *model.ChatMessage) templ.Component {
	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Render(ctx, bubble(message.Role, message.Content))
		w.Render(ctx, bubble(reply.Role, reply.Content))
		w.Render(ctx, SessionField(reply.SessionID, true))
		w.Raw(`<div id="chat-suggestions" hx-swap-oob="delete"></div>`)
	})
}

func bubble(role model.Role, content string) templ.Component {
	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		if role == model.RoleUser {
			w.Raw(`<div class="flex justify-end" data-role="user"><div class="max-w-[80%] rounded-lg bg-indigo-600 px-4 py-2 text-sm text-white whitespace-pre-wrap">`)
			w.Text(content)
			w.Raw(`</div></div>`)
			return
		}
		w.Raw(`<div class="flex justify-start" data-role="assistant"><div class="prose prose-sm max-w-[80%] rounded-lg bg-gray-100 px-4 py-2 text-sm">`)
		w.Render(ctx, ui.Markdown(content))
		w.Raw(`</div></div>`)
	})
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
