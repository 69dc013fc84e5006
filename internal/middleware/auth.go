package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
)

// AuthMiddleware checks for a JWT cookie and adds the user to the context if valid
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.AuthCookieName)
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.UserFromToken(r.Context(), cookie.Value)
			if err != nil {
				// Keep the cookie when the store is down; the token may still be good
				if errors.Is(err, service.ErrUnauthenticated) {
					authService.ClearJWTCookie(w)
				} else {
					slog.WarnContext(r.Context(), "failed to load session user", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the user is authenticated
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			ui.Redirect(w, r, "/auth")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest ensures the user is not authenticated
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			ui.Redirect(w, r, "/app/dashboard")
			return
		}
		next.ServeHTTP(w, r)
	}
}
