package routes

import (
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/templui/studyokr/assets"
	"github.com/templui/studyokr/internal/app"
	"github.com/templui/studyokr/internal/handler"
	"github.com/templui/studyokr/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	goal := handler.NewGoalHandler(app.GoalService, app.DashboardService)
	chat := handler.NewChatHandler(app.ChatService, app.GoalService)
	history := handler.NewHistoryHandler(app.ChatService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Operations
	mux.HandleFunc("GET /healthz", health.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	mux.HandleFunc("GET /auth", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("GET /auth/signup", middleware.RequireGuest(auth.SignupPage))
	mux.HandleFunc("GET /auth/verify/{token}", auth.VerifyEmail)

	mux.HandleFunc("POST /auth", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/signup", rateLimiter(middleware.RequireGuest(auth.Signup)))
	mux.HandleFunc("POST /auth/verify/resend", rateLimiter(middleware.RequireGuest(auth.ResendVerification)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Dashboard
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.DashboardPage))

	// Goal
	mux.HandleFunc("GET /app/goal/new", middleware.RequireAuth(goal.NewGoalPage))
	mux.HandleFunc("GET /app/goal/edit", middleware.RequireAuth(goal.EditGoalPage))
	mux.HandleFunc("POST /app/goal/wizard", middleware.RequireAuth(goal.Wizard))
	mux.HandleFunc("POST /app/goal", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PUT /app/goal/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("PATCH /app/goal/{id}/key-results/{index}", middleware.RequireAuth(goal.UpdateProgress))

	// Assistant
	mux.HandleFunc("GET /app/chat", middleware.RequireAuth(chat.ChatPage))
	mux.HandleFunc("POST /app/chat", middleware.RequireAuth(chat.Send))
	mux.HandleFunc("POST /app/chat/new", middleware.RequireAuth(chat.NewChat))

	// History
	mux.HandleFunc("GET /app/history", middleware.RequireAuth(history.HistoryPage))
	mux.HandleFunc("GET /app/history/{session}", middleware.RequireAuth(history.SessionPage))

	// Export
	mux.HandleFunc("GET /app/export", middleware.RequireAuth(export.Export))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (SecurityHeaders reads the environment)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders, // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging(mux),
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService),
		middleware.WithURLPath,
	)

	return handler
}
