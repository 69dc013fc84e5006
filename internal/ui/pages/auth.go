package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/components/form"
	"github.com/templui/studyokr/internal/ui/layouts"
)

// AuthForm carries submitted values and errors back into the auth forms.
type AuthForm struct {
	Email  string
	Errors map[string]string
	// Message is a form level error.
	Message string
	// Unverified offers to resend the verification link.
	Unverified bool
}

func Login(f AuthForm) templ.Component {
	return layouts.Base("Sign in", authCard("Sign in", ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Render(ctx, form.Alert(f.Message))
		w.Raw(`<form method="post" action="/auth">`)
		w.Render(ctx, form.CSRF())
		w.Render(ctx, form.Input(form.InputProps{Name: "email", Label: "Email", Type: "email", Value: f.Email, Error: f.Errors["email"], Required: true}))
		w.Render(ctx, form.Input(form.InputProps{Name: "password", Label: "Password", Type: "password", Error: f.Errors["password"], Required: true}))
		w.Render(ctx, form.Button(form.ButtonProps{Label: "Sign in", Class: "w-full"}))
		w.Raw(`</form>`)

		if f.Unverified {
			w.Raw(`<form method="post" action="/auth/verify/resend" class="mt-4 text-center text-sm">`)
			w.Render(ctx, form.CSRF())
			w.Rawf(`<input type="hidden" name="email" value="%s"/>`, ui.Esc(f.Email))
			w.Raw(`<button type="submit" class="text-indigo-600 hover:underline">Send the verification link again</button></form>`)
		}

		w.Raw(`<p class="mt-6 text-center text-sm text-gray-600">No account yet? <a href="/auth/signup" class="text-indigo-600 hover:underline">Sign up</a></p>`)
	})))
}

func Signup(f AuthForm) templ.Component {
	return layouts.Base("Sign up", authCard("Create your account", ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Render(ctx, form.Alert(f.Message))
		w.Raw(`<form method="post" action="/auth/signup">`)
		w.Render(ctx, form.CSRF())
		w.Render(ctx, form.Input(form.InputProps{Name: "email", Label: "Email", Type: "email", Value: f.Email, Error: f.Errors["email"], Required: true}))
		w.Render(ctx, form.Input(form.InputProps{Name: "password", Label: "Password", Type: "password", Error: f.Errors["password"], Required: true}))
		w.Raw(`<p class="-mt-2 mb-4 text-xs text-gray-500">At least 8 characters with upper and lower case letters and a number.</p>`)
		w.Render(ctx, form.Button(form.ButtonProps{Label: "Create account", Class: "w-full"}))
		w.Raw(`</form>`)
		w.Raw(`<p class="mt-6 text-center text-sm text-gray-600">Already registered? <a href="/auth" class="text-indigo-600 hover:underline">Sign in</a></p>`)
	})))
}

// CheckEmail is shown after sign up and after a resend request.
func CheckEmail(email string) templ.Component {
	return layouts.Base("Check your email", authCard("Check your email", ui.Component(func(_ context.Context, w *ui.Writer) {
		w.Raw(`<p class="text-sm text-gray-600">If an unverified account exists for <strong>`)
		w.Text(email)
		w.Raw(`</strong>, we sent it a verification link. Open the link to activate your account, then sign in.</p>`)
		w.Raw(`<a href="/auth" class="mt-6 inline-block text-sm text-indigo-600 hover:underline">Back to sign in</a>`)
	})))
}

func VerifyFailed(message string) templ.Component {
	return layouts.Base("Verification failed", authCard("Verification failed", ui.Component(func(_ context.Context, w *ui.Writer) {
		w.Raw(`<p class="text-sm text-gray-600">`)
		w.Text(message)
		w.Raw(`</p>`)
		w.Raw(`<a href="/auth" class="mt-6 inline-block text-sm text-indigo-600 hover:underline">Sign in to request a new link</a>`)
	})))
}

func authCard(title string, body templ.Component) templ.Component {
	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Raw(`<div class="mx-auto mt-8 max-w-md rounded-lg border border-gray-200 bg-white p-8 shadow-sm">`)
		w.Raw(`<h1 class="mb-6 text-2xl font-semibold">`)
		w.Text(title)
		w.Raw(`</h1>`)
		w.Render(ctx, body)
		w.Raw(`</div>`)
	})
}
