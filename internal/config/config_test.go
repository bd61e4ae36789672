package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		SessionSecret:      "session-secret",
		AIKey:              "ai-key",
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.AIModel)
	assert.Equal(t, 300*time.Second, cfg.ProcessTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadConfigTimeoutOverride(t *testing.T) {
	t.Setenv("PROCESS_TIMEOUT_SECONDS", "60")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.ProcessTimeout)
}

func TestLoadConfigInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("PROCESS_TIMEOUT_SECONDS", "not-a-number")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, cfg.ProcessTimeout)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	missingAI := validConfig()
	missingAI.AIKey = ""
	assert.ErrorContains(t, missingAI.Validate(), "AI_API_KEY")

	missingGoogle := validConfig()
	missingGoogle.GoogleClientID = ""
	assert.ErrorContains(t, missingGoogle.Validate(), "GOOGLE_CLIENT_ID")
}

func TestValidateAllowsEmptyWebhookSecret(t *testing.T) {
	cfg := validConfig()
	cfg.WebhookSecret = ""
	assert.NoError(t, cfg.Validate())
}
