package layouts

import (
	"context"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/ui"
)

type navItem struct {
	Href  string
	Label string
}

var appNav = []navItem{
	{Href: "/app/dashboard", Label: "Dashboard"},
	{Href: "/app/chat", Label: "Assistant"},
	{Href: "/app/history", Label: "History"},
}

// script runs under the request nonce. It handles toasts and the chat
// transcript, since inline event handlers are blocked by the CSP.
const script = `document.addEventListener("click", function (e) {
  var b = e.target.closest("[data-toast-dismiss]");
  if (b) { b.closest("[data-toast]").remove(); }
});
document.body.addEventListener("htmx:afterSwap", function () {
  var t = document.getElementById("chat-transcript");
  if (t) { t.scrollTop = t.scrollHeight; }
});
document.body.addEventListener("htmx:afterRequest", function (e) {
  if (e.detail.elt.id === "chat-form" && e.detail.successful) { e.detail.elt.querySelector("textarea").value = ""; }
});
document.body.addEventListener("htmx:afterSettle", function () {
  document.querySelectorAll("[data-toast]").forEach(function (el) {
    if (!el.dataset.timer) {
      el.dataset.timer = "1";
      setTimeout(function () { el.remove(); }, 6000);
    }
  });
});`

// Base is the document shell for every page.
func Base(title string, content templ.Component) templ.Component {
	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		appName := "StudyOKR"
		cfg := ctxkeys.Config(ctx)
		if cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}
		nonce := ui.Esc(templ.GetNonce(ctx))
		csrf := ui.Esc(ctxkeys.CSRFToken(ctx))

		fullTitle := appName
		if title != "" {
			fullTitle = title + " · " + appName
		}

		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		w.Rawf(`<meta name="csrf-token" content="%s"/>`, csrf)
		w.Raw(`<title>`)
		w.Text(fullTitle)
		w.Raw(`</title>`)
		w.Rawf(`<script nonce="%s" src="https://cdn.tailwindcss.com"></script>`, nonce)
		w.Rawf(`<script nonce="%s" src="https://unpkg.com/htmx.org@2.0.4"></script>`, nonce)
		w.Raw(`<link rel="stylesheet" href="/assets/css/app.css"/>`)
		w.Raw(`</head>`)
		w.Rawf(`<body class="min-h-screen bg-gray-50 text-gray-900" hx-headers='{"X-CSRF-Token": "%s"}'>`, csrf)

		header(ctx, w, appName)

		w.Raw(`<main class="mx-auto max-w-5xl px-4 py-8">`)
		w.Render(ctx, content)
		w.Raw(`</main>`)

		w.Raw(`<div id="toast-container" class="pointer-events-none fixed bottom-4 right-4 z-50 flex flex-col gap-2"></div>`)
		w.Rawf(`<script nonce="%s">%s</script>`, nonce, script)
		w.Raw(`</body></html>`)
	})
}

func header(ctx context.Context, w *ui.Writer, appName string) {
	user := ctxkeys.User(ctx)
	path := ctxkeys.URLPath(ctx)

	w.Raw(`<header class="border-b border-gray-200 bg-white"><div class="mx-auto flex max-w-5xl items-center justify-between px-4 py-3">`)
	brand := "/"
	if user != nil {
		brand = "/app/dashboard"
	}
	w.Rawf(`<a href="%s" class="text-lg font-semibold text-indigo-600">`, brand)
	w.Text(appName)
	w.Raw(`</a>`)

	w.Raw(`<nav class="flex items-center gap-4 text-sm">`)
	if user == nil {
		w.Raw(`<a href="/auth" class="text-gray-600 hover:text-gray-900">Sign in</a>`)
		w.Raw(`<a href="/auth/signup" class="rounded-md bg-indigo-600 px-3 py-1.5 text-white hover:bg-indigo-700">Get started</a>`)
	} else {
		for _, item := range appNav {
			class := ui.Class("text-gray-600 hover:text-gray-900", activeClass(path, item.Href))
			w.Rawf(`<a href="%s" class="%s">`, item.Href, ui.Esc(class))
			w.Text(item.Label)
			w.Raw(`</a>`)
		}
		w.Raw(`<form method="post" action="/auth/logout">`)
		w.Rawf(`<input type="hidden" name="csrf_token" value="%s"/>`, ui.Esc(ctxkeys.CSRFToken(ctx)))
		w.Raw(`<button type="submit" class="text-gray-500 hover:text-gray-900">Sign out</button></form>`)
	}
	w.Raw(`</nav></div></header>`)
}

func activeClass(path, href string) string {
	if path == href || (len(path) > len(href) && path[:len(href)+1] == href+"/") {
		return "font-semibold text-gray-900"
	}
	return ""
}
