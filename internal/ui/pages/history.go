package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/layouts"
)

const timeLayout = "Jan 2, 2006 15:04"

func History(sessions []*model.ChatSession) templ.Component {
	return layouts.Base("History", ui.Component(func(_ context.Context, w *ui.Writer) {
		w.Raw(`<h1 class="mb-6 text-2xl font-semibold">Conversation history</h1>`)

		if len(sessions) == 0 {
			w.Raw(`<div class="rounded-lg border border-dashed border-gray-300 bg-white p-10 text-center text-sm text-gray-600">`)
			w.Raw(`No conversations yet. <a href="/app/chat" class="text-indigo-600 hover:underline">Ask the assistant something</a>.</div>`)
			return
		}

		w.Raw(`<ul class="divide-y divide-gray-100 rounded-lg border border-gray-200 bg-white">`)
		for _, s := range sessions {
			w.Rawf(`<li><a href="/app/history/%s" class="block px-4 py-3 hover:bg-gray-50">`, ui.Esc(s.ID))
			w.Raw(`<p class="font-medium">`)
			w.Text(s.Preview)
			w.Raw(`</p><p class="mt-1 text-xs text-gray-500">`)
			w.Text(fmt.Sprintf("%s · %d messages", s.LastMessageAt.Format(timeLayout), len(s.Messages)))
			w.Raw(`</p></a></li>`)
		}
		w.Raw(`</ul>`)
	}))
}

// HistoryDetail shows one stored conversation. canContinue links back into
// the chat with the same session.
func HistoryDetail(session *model.ChatSession, canContinue bool) templ.Component {
	return layouts.Base("Conversation", ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Raw(`<div class="mb-6 flex items-center justify-between"><div>`)
		w.Raw(`<a href="/app/history" class="text-sm text-indigo-600 hover:underline">← All conversations</a>`)
		w.Raw(`<p class="mt-2 text-sm text-gray-500">`)
		w.Text("Started " + session.StartedAt.Format(timeLayout))
		w.Raw(`</p></div>`)
		if canContinue {
			w.Rawf(`<a href="/app/chat?session=%s" class="rounded-md bg-indigo-600 px-4 py-2 text-sm text-white hover:bg-indigo-700">Continue</a>`, ui.Esc(session.ID))
		}
		w.Raw(`</div>`)

		w.Raw(`<div class="space-y-4 rounded-lg border border-gray-200 bg-white p-4">`)
		for _, m := range session.Messages {
			w.Render(ctx, bubble(m.Role, m.Content))
		}
		w.Raw(`</div>`)
	}))
}
