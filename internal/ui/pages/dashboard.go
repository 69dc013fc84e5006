package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/layouts"
)

const dateLayout = "Jan 2, 2006"

func Dashboard(overview *model.Overview) templ.Component {
	return layouts.Base("Dashboard", DashboardContent(overview))
}

// DashboardContent is swapped in place after a progress update.
func DashboardContent(overview *model.Overview) templ.Component {
	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Raw(`<div id="dashboard">`)
		w.Raw(`<div class="mb-6 flex items-center justify-between"><h1 class="text-2xl font-semibold">Dashboard</h1>`)
		w.Raw(`<div class="flex gap-2">`)
		w.Raw(`<a href="/app/chat" class="rounded-md bg-indigo-600 px-4 py-2 text-sm text-white hover:bg-indigo-700">Ask the assistant</a>`)
		w.Raw(`<a href="/app/export" class="rounded-md border border-gray-300 bg-white px-4 py-2 text-sm hover:bg-gray-50">Export data</a>`)
		w.Raw(`</div></div>`)

		stats(w, overview)

		if !overview.HasGoal() {
			w.Raw(`<div class="rounded-lg border border-dashed border-gray-300 bg-white p-10 text-center">`)
			w.Raw(`<h2 class="text-lg font-semibold">No learning goal yet</h2>`)
			w.Raw(`<p class="mt-2 text-sm text-gray-600">Set an objective and up to five key results. The assistant uses them to plan your study days.</p>`)
			w.Raw(`<a href="/app/goal/new" class="mt-6 inline-block rounded-md bg-indigo-600 px-4 py-2 text-sm text-white hover:bg-indigo-700">Create goal</a>`)
			w.Raw(`</div></div>`)
			return
		}

		goalCard(ctx, w, overview.Goal)
		w.Raw(`</div>`)
	})
}

func stats(w *ui.Writer, o *model.Overview) {
	progress := "Not yet tracked"
	if o.ProgressTracked() {
		progress = fmt.Sprintf("%d%%", o.AverageProgress)
	}
	deadline := "None"
	if o.NextDeadline != nil {
		deadline = o.NextDeadline.Format(dateLayout)
		if o.NextDeadlineText != "" {
			deadline += " · " + o.NextDeadlineText
		}
	}

	cards := []struct{ Label, Value string }{
		{"Average progress", progress},
		{"Key results completed", fmt.Sprintf("%d / %d", o.CompletedCount, o.KeyResultCount)},
		{"Next deadline", deadline},
		{"Conversations", fmt.Sprintf("%d (%d messages)", o.SessionCount, o.MessageCount)},
	}

	w.Raw(`<div class="mb-8 grid grid-cols-2 gap-4 md:grid-cols-4">`)
	for _, c := range cards {
		w.Raw(`<div class="rounded-lg border border-gray-200 bg-white p-4"><p class="text-xs uppercase tracking-wide text-gray-500">`)
		w.Text(c.Label)
		w.Raw(`</p><p class="mt-1 text-lg font-semibold">`)
		w.Text(c.Value)
		w.Raw(`</p></div>`)
	}
	w.Raw(`</div>`)
}

func goalCard(ctx context.Context, w *ui.Writer, goal *model.LearningGoal) {
	w.Raw(`<section class="rounded-lg border border-gray-200 bg-white p-6">`)
	w.Raw(`<div class="flex items-start justify-between gap-4"><div>`)
	w.Raw(`<p class="text-xs uppercase tracking-wide text-gray-500">Objective</p><h2 class="mt-1 text-xl font-semibold">`)
	w.Text(goal.Objective)
	w.Raw(`</h2><p class="mt-1 text-sm text-gray-500">`)
	w.Text(goal.Timeframe.Label() + " · " + goal.Category.Label())
	w.Raw(`</p></div>`)
	w.Raw(`<a href="/app/goal/edit" class="text-sm text-indigo-600 hover:underline">Edit goal</a></div>`)

	w.Raw(`<ul class="mt-6 divide-y divide-gray-100">`)
	for i, kr := range goal.KeyResults {
		keyResultRow(w, goal.ID, i, kr)
	}
	w.Raw(`</ul></section>`)
}

func keyResultRow(w *ui.Writer, goalID string, index int, kr model.KeyResult) {
	w.Raw(`<li class="flex flex-col gap-3 py-4 md:flex-row md:items-center md:justify-between"><div class="flex-1">`)
	w.Rawf(`<p class="font-medium">%s</p>`, ui.Esc(kr.Text))
	w.Raw(`<p class="mt-1 text-xs text-gray-500">`)
	w.Text("Priority: " + string(kr.Priority))
	if kr.Deadline != nil {
		w.Text(" · Deadline: " + kr.Deadline.Format(dateLayout))
	}
	w.Raw(`</p>`)

	if kr.Tracked() {
		w.Rawf(`<div class="mt-2 h-2 w-full rounded bg-gray-100"><div class="h-2 rounded bg-indigo-500" style="width: %d%%"></div></div>`, *kr.Progress)
	} else {
		w.Raw(`<p class="mt-2 text-xs text-gray-400">Not yet tracked</p>`)
	}
	w.Raw(`</div>`)

	value := ""
	if kr.Progress != nil {
		value = fmt.Sprintf("%d", *kr.Progress)
	}
	w.Rawf(`<form class="flex items-center gap-2" hx-patch="/app/goal/%s/key-results/%d" hx-target="#dashboard" hx-swap="outerHTML">`, ui.Esc(goalID), index)
	w.Rawf(`<label class="sr-only" for="progress-%d">Progress</label>`, index)
	w.Rawf(`<input id="progress-%d" name="progress" type="number" min="0" max="100" value="%s" placeholder="%%" class="w-20 rounded-md border border-gray-300 px-2 py-1 text-sm"/>`, index, value)
	w.Raw(`<button type="submit" class="rounded-md border border-gray-300 px-3 py-1 text-sm hover:bg-gray-50">Save</button>`)
	w.Raw(`</form></li>`)
}
