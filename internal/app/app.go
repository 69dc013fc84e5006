package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/jmoiron/sqlx"

	studyokr "github.com/templui/studyokr"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/config"
	"github.com/templui/studyokr/internal/db"
	"github.com/templui/studyokr/internal/repository"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	GoalService      *service.GoalService
	ChatService      *service.ChatService
	DashboardService *service.DashboardService
	ExportService    *service.ExportService
	Responder        *assistant.Responder
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	chatRepository := repository.NewChatRepository(database)

	// Storage (optional, exports are streamed when unset)
	exportStorage, err := storage.New(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Assistant
	knowledge, err := LoadKnowledge(cfg.ContentPath)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	responder := assistant.NewResponder(knowledge, nil)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
	)
	goalService := service.NewGoalService(goalRepository)
	chatService := service.NewChatService(chatRepository, goalService, responder, service.SessionMode(cfg.ChatSessionMode))
	dashboardService := service.NewDashboardService(goalService, chatRepository)
	exportService := service.NewExportService(goalService, chatService, emailService, exportStorage)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		EmailService:     emailService,
		GoalService:      goalService,
		ChatService:      chatService,
		DashboardService: dashboardService,
		ExportService:    exportService,
		Responder:        responder,
	}, nil
}

// LoadKnowledge reads the knowledge base from contentPath/knowledge, or from
// the articles compiled into the binary when contentPath is empty.
func LoadKnowledge(contentPath string) (*assistant.KnowledgeBase, error) {
	var fsys fs.FS = studyokr.KnowledgeFS
	dir := "content/knowledge"
	if contentPath != "" {
		fsys = os.DirFS(contentPath)
		dir = "knowledge"
	}
	return assistant.LoadKnowledge(fsys, dir)
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
