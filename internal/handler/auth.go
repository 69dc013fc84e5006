package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/pages"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

func (h *authHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(pages.AuthForm{}))
}

func (h *authHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Signup(pages.AuthForm{}))
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	form := pages.AuthForm{Email: email}

	if email == "" || password == "" {
		form.Message = "Email and password are required"
		ui.Render(w, r, pages.Login(form))
		return
	}

	user, err := h.authService.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		slog.WarnContext(r.Context(), "password login failed", "error", err)
		form.Message = "Invalid email or password"
		ui.Render(w, r, pages.Login(form))
		return
	case errors.Is(err, service.ErrEmailNotVerified):
		form.Message = "Please verify your email address before signing in."
		form.Unverified = true
		ui.Render(w, r, pages.Login(form))
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "login failed", "error", err)
		form.Message = service.UserMessage(err)
		ui.Render(w, r, pages.Login(form))
		return
	}

	err = h.signIn(w, user)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate JWT", "error", err, "user_id", user.ID)
		form.Message = "An error occurred. Please try again."
		ui.Render(w, r, pages.Login(form))
		return
	}

	slog.InfoContext(r.Context(), "user logged in with password", "user_id", user.ID)
	ui.Redirect(w, r, "/app/dashboard")
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.authService.Signup(r.Context(), email, password)
	if err != nil {
		form := pages.AuthForm{Email: email}
		if errs, ok := fieldErrors(err); ok {
			form.Errors = errs
		} else {
			slog.ErrorContext(r.Context(), "signup failed", "error", err)
			form.Message = service.UserMessage(err)
		}
		ui.Render(w, r, pages.Signup(form))
		return
	}

	ui.Render(w, r, pages.CheckEmail(user.Email))
}

func (h *authHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))

	err := h.authService.ResendVerification(r.Context(), email)
	if err != nil {
		// Don't reveal specific errors to user
		slog.WarnContext(r.Context(), "verification resend failed", "error", err)
	}

	ui.Render(w, r, pages.CheckEmail(email))
}

// VerifyEmail consumes the link from the verification email and signs the
// user in.
func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyEmail(r.Context(), token)
	if err != nil {
		slog.WarnContext(r.Context(), "email verification failed", "error", err)
		message := service.UserMessage(err)
		if errors.Is(err, service.ErrInvalidToken) {
			message = "This verification link is invalid or has expired."
		}
		w.WriteHeader(http.StatusBadRequest)
		ui.Render(w, r, pages.VerifyFailed(message))
		return
	}

	err = h.signIn(w, user)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate JWT", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	ui.Redirect(w, r, "/")
}

func (h *authHandler) signIn(w http.ResponseWriter, user *model.User) error {
	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		return err
	}
	h.authService.SetJWTCookie(w, jwtToken, time.Now().Add(h.authService.JWTExpiry()))
	return nil
}
