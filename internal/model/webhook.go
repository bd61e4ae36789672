package model

import (
	"encoding/json"
	"strings"
)

// WebhookEnvelope is the raw platform webhook payload before any trust or
// schema validation. It lives only for the duration of one request.
type WebhookEnvelope struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// IsGmailMessage reports whether this event carries a new Gmail message.
func (e *WebhookEnvelope) IsGmailMessage() bool {
	return e.Type == "gmail_new_message" || strings.Contains(strings.ToLower(e.Type), "gmail")
}

// WebhookAck is the acknowledgment body returned to the platform. It is sent
// for every verified request, including ones whose payload failed to parse, so
// the platform never retries delivery.
type WebhookAck struct {
	Status    string `json:"status"`
	WebhookID string `json:"webhook_id"`
}
