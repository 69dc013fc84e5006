package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/layouts"
)

var features = []struct {
	Icon  string
	Title string
	Body  string
}{
	{"🎯", "Goals that measure", "Write one objective with up to five key results, each with a deadline and a priority."},
	{"🤖", "A study assistant", "Ask for today's tasks, a progress report, study advice or an explanation of a topic."},
	{"📈", "Honest progress", "Track each key result yourself. Nothing is estimated or made up."},
}

func Home() templ.Component {
	return layouts.Base("", ui.Component(func(ctx context.Context, w *ui.Writer) {
		tagline := "Set learning goals, plan your days, ask your study assistant"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppTagline != "" {
			tagline = cfg.AppTagline
		}

		w.Raw(`<section class="py-16 text-center">`)
		w.Raw(`<h1 class="text-4xl font-bold tracking-tight">Learn with a plan</h1>`)
		w.Raw(`<p class="mx-auto mt-4 max-w-xl text-lg text-gray-600">`)
		w.Text(tagline)
		w.Raw(`</p>`)
		w.Raw(`<div class="mt-8 flex justify-center gap-3">`)
		if ctxkeys.User(ctx) != nil {
			w.Raw(`<a href="/app/dashboard" class="rounded-md bg-indigo-600 px-5 py-2.5 text-white hover:bg-indigo-700">Open dashboard</a>`)
		} else {
			w.Raw(`<a href="/auth/signup" class="rounded-md bg-indigo-600 px-5 py-2.5 text-white hover:bg-indigo-700">Create an account</a>`)
			w.Raw(`<a href="/auth" class="rounded-md border border-gray-300 bg-white px-5 py-2.5 hover:bg-gray-50">Sign in</a>`)
		}
		w.Raw(`</div></section>`)

		w.Raw(`<section class="grid gap-6 md:grid-cols-3">`)
		for _, f := range features {
			w.Raw(`<div class="rounded-lg border border-gray-200 bg-white p-6">`)
			w.Rawf(`<div class="text-2xl">%s</div>`, f.Icon)
			w.Raw(`<h2 class="mt-2 font-semibold">`)
			w.Text(f.Title)
			w.Raw(`</h2><p class="mt-1 text-sm text-gray-600">`)
			w.Text(f.Body)
			w.Raw(`</p></div>`)
		}
		w.Raw(`</section>`)
	}))
}

func NotFound() templ.Component {
	return layouts.Base("Not found", ui.Component(func(_ context.Context, w *ui.Writer) {
		w.Raw(`<section class="py-24 text-center">`)
		w.Raw(`<p class="text-6xl font-bold text-gray-300">404</p>`)
		w.Raw(`<h1 class="mt-4 text-2xl font-semibold">Page not found</h1>`)
		w.Raw(`<p class="mt-2 text-gray-600">The page you are looking for does not exist.</p>`)
		w.Raw(`<a href="/" class="mt-6 inline-block text-indigo-600 hover:underline">Back to home</a>`)
		w.Raw(`</section>`)
	}))
}
