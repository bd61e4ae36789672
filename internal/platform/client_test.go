package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmail-reaper/internal/logger"
)

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard)
}

func TestCreateTrigger(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody createTriggerRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Trigger{
			ID:     "trig_1",
			NanoID: "nano_1",
			Slug:   TriggerSlug,
			Status: "active",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", quietLogger())
	trigger, err := client.CreateTrigger(context.Background(), "conn_1", DefaultTriggerConfig())
	require.NoError(t, err)

	assert.Equal(t, "/triggers", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "conn_1", gotBody.UserID)
	assert.Equal(t, TriggerSlug, gotBody.Slug)
	assert.Equal(t, "INBOX", gotBody.TriggerConfig.LabelIDs)
	assert.Equal(t, 1, gotBody.TriggerConfig.Interval)

	assert.Equal(t, "trig_1", trigger.ID)
	assert.Equal(t, "active", trigger.Status)
}

func TestCreateTriggerReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid connection"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", quietLogger())
	_, err := client.CreateTrigger(context.Background(), "conn_1", DefaultTriggerConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "invalid connection")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Auth failures still prove connectivity.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", quietLogger())
	assert.True(t, client.Ping(context.Background()))
}

func TestPingFalseWithoutConfig(t *testing.T) {
	client := NewClient("", "", quietLogger())
	assert.False(t, client.Ping(context.Background()))
}

func TestPingFalseOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", quietLogger())
	assert.False(t, client.Ping(context.Background()))
}
