package handler

import (
	"net/http"

	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/service"

	"github.com/labstack/echo/v4"
)

type PromptHandler struct {
	promptService service.PromptService
	connHandler   *ConnectionHandler
	logger        *logger.Logger
}

func NewPromptHandler(promptService service.PromptService, connHandler *ConnectionHandler, logger *logger.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		connHandler:   connHandler,
		logger:        logger,
	}
}

// GetPrompt returns the authenticated user's stored filter prompt.
func (h *PromptHandler) GetPrompt(c echo.Context) error {
	user, err := h.connHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	prompt, err := h.promptService.GetStoredPrompt(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "No prompt stored for user",
		})
	}

	return c.JSON(http.StatusOK, prompt)
}

type updatePromptRequest struct {
	Prompt string `json:"prompt"`
}

// UpdatePrompt stores the authenticated user's filter prompt.
func (h *PromptHandler) UpdatePrompt(c echo.Context) error {
	user, err := h.connHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var request updatePromptRequest
	if err := c.Bind(&request); err != nil || request.Prompt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "prompt is required",
		})
	}

	prompt, err := h.promptService.SetUserPrompt(c.Request().Context(), user.ID, request.Prompt)
	if err != nil {
		h.logger.Error("Failed to update prompt:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update prompt",
		})
	}

	return c.JSON(http.StatusOK, prompt)
}
