package handler

import (
	"fmt"
	"net/http"

	"gmail-reaper/internal/config"
	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
	"gmail-reaper/internal/platform"
	"gmail-reaper/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

type ConnectionHandler struct {
	authService service.AuthService
	platform    *platform.Client
	config      *config.Config
	logger      *logger.Logger
}

func NewConnectionHandler(authService service.AuthService, platformClient *platform.Client, cfg *config.Config, logger *logger.Logger) *ConnectionHandler {
	gothic.Store = NewSessionStore([]byte(cfg.SessionSecret))

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/auth/google/callback",
			"https://www.googleapis.com/auth/gmail.modify",
			"https://www.googleapis.com/auth/gmail.labels",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		),
	)

	return &ConnectionHandler{
		authService: authService,
		platform:    platformClient,
		config:      cfg,
		logger:      logger,
	}
}

// CreateConnection initiates the Gmail connection flow for a user. The caller
// has to send the user to the returned redirect URL to grant consent.
func (h *ConnectionHandler) CreateConnection(c echo.Context) error {
	var request model.ConnectionRequest
	if err := c.Bind(&request); err != nil || request.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "user_id is required",
		})
	}

	h.logger.Info("Initiating Gmail connection for user:", request.UserID)

	req := withProvider(c)
	authURL, err := gothic.GetAuthURL(c.Response(), req)
	if err != nil {
		h.logger.Error("Error creating connection for user", request.UserID, ":", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Failed to create connection: %v", err),
		})
	}

	return c.JSON(http.StatusOK, model.ConnectionResponse{
		ConnectionID: uuid.New().String(),
		RedirectURL:  authURL,
		Status:       model.ConnectionInitiated,
	})
}

// BeginAuth redirects the browser straight into the OAuth flow.
func (h *ConnectionHandler) BeginAuth(c echo.Context) error {
	provider := c.Param("provider")
	if provider != "google" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid provider",
		})
	}

	gothic.BeginAuthHandler(c.Response(), withProvider(c))
	return nil
}

// Callback completes OAuth, stores the user's tokens and registers the
// new-message trigger with the integration platform.
func (h *ConnectionHandler) Callback(c echo.Context) error {
	req := withProvider(c)

	googleUser, err := gothic.CompleteUserAuth(c.Response(), req)
	if err != nil {
		h.logger.Error("Failed to complete user auth:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Authentication failed",
		})
	}

	user, err := h.authService.GetOrCreateUser(
		c.Request().Context(),
		googleUser.Provider+"_"+googleUser.UserID,
		googleUser.Email,
		googleUser.Name,
		googleUser.AccessToken,
		googleUser.RefreshToken,
		googleUser.ExpiresAt,
	)
	if err != nil {
		h.logger.Error("Failed to get or create user:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to process user",
		})
	}

	// Trigger registration failing should not fail the connection; the user
	// can retry via POST /api/connection and the tokens are already stored.
	if _, err := h.platform.CreateTrigger(c.Request().Context(), user.ID, platform.DefaultTriggerConfig()); err != nil {
		h.logger.Error("Failed to create trigger for user", user.ID, ":", err)
	}

	session, _ := gothic.Store.Get(req, "gothic_session")
	session.Values["user_id"] = user.ID
	if err := session.Save(req, c.Response()); err != nil {
		h.logger.Error("Failed to save session:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to save session",
		})
	}

	return c.Redirect(http.StatusTemporaryRedirect, "/")
}

// GetConnection reports the connection status for a user.
func (h *ConnectionHandler) GetConnection(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "user_id is required",
		})
	}

	h.logger.Info("Checking connection status for user:", userID)

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusOK, model.ConnectionStatusResponse{
			UserID:    userID,
			Status:    model.ConnectionFailed,
			Connected: false,
		})
	}

	status := user.ConnectionState()
	return c.JSON(http.StatusOK, model.ConnectionStatusResponse{
		UserID:       user.ID,
		Status:       status,
		Connected:    status == model.ConnectionActive,
		ConnectionID: user.GoogleID,
		Email:        user.Email,
		CreatedAt:    &user.CreatedAt,
	})
}

// Logout clears the user's session.
func (h *ConnectionHandler) Logout(c echo.Context) error {
	gothic.Logout(c.Response(), withProvider(c))
	return c.Redirect(http.StatusTemporaryRedirect, "/")
}

// GetCurrentUser returns the session's authenticated user.
func (h *ConnectionHandler) GetCurrentUser(c echo.Context) (*model.User, error) {
	session, err := gothic.Store.Get(c.Request(), "gothic_session")
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("user not authenticated")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from database: %w", err)
	}

	return user, nil
}

// withProvider sets the provider query parameter so gothic recognizes the
// request without a path wildcard.
func withProvider(c echo.Context) *http.Request {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()
	return req
}
