package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
	"gmail-reaper/internal/service"
	"gmail-reaper/internal/webhook"

	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	verifier      *webhook.Verifier
	promptService service.PromptService
	dispatcher    service.Dispatcher
	defaultPrompt string
	logger        *logger.Logger
}

func NewWebhookHandler(
	verifier *webhook.Verifier,
	promptService service.PromptService,
	dispatcher service.Dispatcher,
	defaultPrompt string,
	logger *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:      verifier,
		promptService: promptService,
		dispatcher:    dispatcher,
		defaultPrompt: defaultPrompt,
		logger:        logger,
	}
}

// HandleWebhook receives platform webhook deliveries. Signature failures are
// the only thing that produces a non-200: every payload problem after
// verification is logged and acknowledged so the platform never retries.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "failed to read request body",
		})
	}

	headers := webhook.Headers{
		WebhookID: c.Request().Header.Get(webhook.HeaderWebhookID),
		Timestamp: c.Request().Header.Get(webhook.HeaderWebhookTimestamp),
		Signature: c.Request().Header.Get(webhook.HeaderWebhookSignature),
	}

	webhookID, err := h.verifier.Verify(body, headers)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignatureFormat) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Invalid signature format",
			})
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid webhook signature",
		})
	}

	var envelope model.WebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.logger.Error("Failed to parse webhook body:", err)
		return c.JSON(http.StatusOK, model.WebhookAck{Status: "received", WebhookID: webhookID})
	}

	h.logger.Info("Webhook received:", envelope.Type)

	if envelope.IsGmailMessage() {
		h.handleGmailMessage(c, &envelope)
	}

	return c.JSON(http.StatusOK, model.WebhookAck{Status: "received", WebhookID: webhookID})
}

func (h *WebhookHandler) handleGmailMessage(c echo.Context, envelope *model.WebhookEnvelope) {
	msg, err := model.ParseGmailMessage(envelope.Data, func(e *model.BodyDecodeError) {
		h.logger.Error(e.Error())
	})
	if err != nil {
		// Dropped message, acknowledged anyway: a malformed payload will not
		// get better on redelivery.
		h.logger.Error("Error parsing Gmail webhook:", err)
		return
	}

	prompt := h.promptService.GetUserPrompt(c.Request().Context(), msg.UserID, h.defaultPrompt)
	h.dispatcher.Dispatch(msg, prompt)
}
