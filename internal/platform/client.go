// Package platform is a minimal client for the integration platform that
// delivers Gmail webhooks. The service only needs two things from it:
// registering a new-message trigger after a user connects, and a connectivity
// probe for the health endpoint.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gmail-reaper/internal/logger"
)

// TriggerSlug identifies the platform trigger that fires on new Gmail messages.
const TriggerSlug = "GMAIL_NEW_GMAIL_MESSAGE"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// TriggerConfig controls what the platform watches for a user's mailbox.
type TriggerConfig struct {
	Interval int    `json:"interval"`
	LabelIDs string `json:"labelids"`
	UserID   string `json:"userId"`
}

// DefaultTriggerConfig polls the inbox every minute for the connected account.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		Interval: 1,
		LabelIDs: "INBOX",
		UserID:   "me",
	}
}

type createTriggerRequest struct {
	UserID        string        `json:"user_id"`
	Slug          string        `json:"slug"`
	TriggerConfig TriggerConfig `json:"trigger_config"`
}

// Trigger is the platform's record of a registered trigger.
type Trigger struct {
	ID     string `json:"id"`
	NanoID string `json:"nano_id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// CreateTrigger registers the Gmail new-message trigger for a user so the
// platform starts delivering webhooks for their mailbox.
func (c *Client) CreateTrigger(ctx context.Context, userID string, config TriggerConfig) (*Trigger, error) {
	payload, err := json.Marshal(createTriggerRequest{
		UserID:        userID,
		Slug:          TriggerSlug,
		TriggerConfig: config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode trigger request: %w", err)
	}

	url := c.baseURL + "/triggers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trigger creation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trigger response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("trigger creation failed with status %d: %s", resp.StatusCode, string(body))
	}

	var trigger Trigger
	if err := json.Unmarshal(body, &trigger); err != nil {
		return nil, fmt.Errorf("failed to parse trigger response: %w", err)
	}

	c.logger.Info("Created trigger for user:", userID, "trigger:", trigger.ID)
	return &trigger, nil
}

// Ping reports whether the platform API is reachable with the configured key.
func (c *Client) Ping(ctx context.Context) bool {
	if c.baseURL == "" || c.apiKey == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/triggers", nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 500
}
