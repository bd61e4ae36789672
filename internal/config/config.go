package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	SessionSecret      string
	DatabaseURL        string
	AIKey              string
	AIModel            string
	PlatformBaseURL    string
	PlatformAPIKey     string
	WebhookSecret      string
	DefaultPrompt      string
	AllowedOrigins     []string
	ProcessTimeout     time.Duration
	Env                string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	timeoutSeconds, err := strconv.Atoi(GetEnv("PROCESS_TIMEOUT_SECONDS", "300"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 300
	}

	return &Config{
		Port:               GetEnv("PORT", "8080"),
		BaseURL:            GetEnv("BASE_URL", "http://localhost:8080"),
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionSecret:      GetEnv("SESSION_SECRET", ""),
		DatabaseURL:        GetEnv("DATABASE_URL", ""),
		AIKey:              GetEnv("AI_API_KEY", ""),
		AIModel:            GetEnv("AI_MODEL", "gpt-4o"),
		PlatformBaseURL:    GetEnv("PLATFORM_BASE_URL", "https://backend.composio.dev/api/v3"),
		PlatformAPIKey:     GetEnv("PLATFORM_API_KEY", ""),
		WebhookSecret:      GetEnv("PLATFORM_WEBHOOK_SECRET", ""),
		DefaultPrompt:      GetEnv("DEFAULT_FILTER_PROMPT", "Default email processing prompt"),
		AllowedOrigins:     strings.Split(GetEnv("ALLOWED_ORIGINS", "*"), ","),
		ProcessTimeout:     time.Duration(timeoutSeconds) * time.Second,
		Env:                GetEnv("ENV", "development"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	// PLATFORM_WEBHOOK_SECRET may be empty: webhook signature verification is
	// then skipped entirely. That state is surfaced by webhook.Verifier.Enabled.
	return nil
}
