package handler

import (
	"database/sql"
	"net/http"
	"time"

	"gmail-reaper/internal/platform"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	db       *sql.DB // nil when running on in-memory storage
	platform *platform.Client
}

func NewHealthHandler(db *sql.DB, platformClient *platform.Client) *HealthHandler {
	return &HealthHandler{
		db:       db,
		platform: platformClient,
	}
}

type healthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	Service           string `json:"service"`
	DatabaseConnected bool   `json:"database_connected"`
	PlatformConnected bool   `json:"platform_connected"`
}

// Health reports liveness plus reachability of the two external dependencies.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	// In-memory storage counts as connected: there is nothing to probe.
	dbConnected := true
	if h.db != nil {
		dbConnected = h.db.PingContext(ctx) == nil
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:            "healthy",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		Service:           "gmail-reaper",
		DatabaseConnected: dbConnected,
		PlatformConnected: h.platform.Ping(ctx),
	})
}
