package main

import (
	"context"
	"database/sql"
	"log"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/config"
	"gmail-reaper/internal/gmail"
	"gmail-reaper/internal/handler"
	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/platform"
	"gmail-reaper/internal/repository"
	"gmail-reaper/internal/repository/memory"
	"gmail-reaper/internal/repository/postgres"
	"gmail-reaper/internal/router"
	"gmail-reaper/internal/service"
	"gmail-reaper/internal/webhook"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Initialize repositories (postgres when DATABASE_URL is set, otherwise
	// in-memory)
	var userRepo repository.UserRepository
	var promptRepo repository.PromptRepository
	var db *sql.DB

	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		userRepo = postgres.NewPostgresUserRepository(db)
		promptRepo = postgres.NewPostgresPromptRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		userRepo = memory.NewInMemoryUserRepository()
		promptRepo = memory.NewInMemoryPromptRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// The process-wide fallback prompt: first stored prompt if one exists,
	// otherwise the configured default.
	defaultPrompt := cfg.DefaultPrompt
	if first, err := promptRepo.FindFirst(context.Background()); err == nil {
		appLogger.Info("Loaded prompt for user", first.UserID)
		defaultPrompt = first.Prompt
	} else {
		appLogger.Warn("No prompts found in database")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, appLogger)
	promptService := service.NewPromptService(promptRepo, appLogger)

	agentClient, err := ai.NewOpenAIClient(cfg.AIKey, cfg.AIModel)
	if err != nil {
		log.Fatal("Failed to create AI client:", err)
	}
	runner := ai.NewRunner(agentClient, appLogger)

	toolsetProvider := gmail.NewToolsetProvider(userRepo, appLogger)
	processor := service.NewProcessor(toolsetProvider, runner, appLogger)
	dispatcher := service.NewGoDispatcher(processor, cfg.ProcessTimeout, appLogger)

	platformClient := platform.NewClient(cfg.PlatformBaseURL, cfg.PlatformAPIKey, appLogger)
	verifier := webhook.NewVerifier(cfg.WebhookSecret)
	if !verifier.Enabled() {
		appLogger.Warn("PLATFORM_WEBHOOK_SECRET is not set; webhook signature verification is disabled")
	}

	// Initialize handlers
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	webhookHandler := handler.NewWebhookHandler(verifier, promptService, dispatcher, defaultPrompt, appLogger)
	connectionHandler := handler.NewConnectionHandler(authService, platformClient, cfg, appLogger)
	promptHandler := handler.NewPromptHandler(promptService, connectionHandler, appLogger)
	healthHandler := handler.NewHealthHandler(db, platformClient)

	router.SetupRoutes(e, webhookHandler, connectionHandler, promptHandler, healthHandler, defaultPrompt)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
	}
}
