package router

import (
	"net/http"

	"gmail-reaper/internal/handler"
	"gmail-reaper/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	webhookHandler *handler.WebhookHandler,
	connectionHandler *handler.ConnectionHandler,
	promptHandler *handler.PromptHandler,
	healthHandler *handler.HealthHandler,
	defaultPrompt string,
) {
	// Webhook ingestion: the platform authenticates with a signature, not a
	// session, so this stays outside any auth middleware.
	e.POST("/webhook", webhookHandler.HandleWebhook)

	e.GET("/health", healthHandler.Health)

	e.GET("/", func(c echo.Context) error {
		message := defaultPrompt
		if message == "" {
			message = "Gmail Reaper API"
		}
		return c.JSON(http.StatusOK, map[string]string{"message": message})
	})

	// OAuth flow
	e.GET("/auth/:provider", connectionHandler.BeginAuth)
	e.GET("/auth/:provider/callback", connectionHandler.Callback)
	e.GET("/auth/logout", connectionHandler.Logout)

	// Connection lifecycle
	e.POST("/api/connection", connectionHandler.CreateConnection)
	e.GET("/api/connection", connectionHandler.GetConnection)

	// Filter prompt management for the signed-in user
	protected := e.Group("/api")
	protected.Use(middleware.AuthMiddleware(connectionHandler))
	protected.GET("/prompt", promptHandler.GetPrompt)
	protected.PUT("/prompt", promptHandler.UpdatePrompt)
}
