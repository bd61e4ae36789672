package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmail-reaper/internal/repository/memory"
)

func TestAuthServiceGetOrCreateUser(t *testing.T) {
	userRepo := memory.NewInMemoryUserRepository()
	authService := NewAuthService(userRepo, quietLogger())

	tokenExpiry := time.Now().Add(1 * time.Hour)
	user, err := authService.GetOrCreateUser(context.Background(), "google_123", "test@example.com", "Test User", "access_token", "refresh_token", tokenExpiry)
	require.NoError(t, err)
	assert.Equal(t, "google_123", user.GoogleID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "access_token", user.AccessToken)

	// A second sign-in for the same Google account returns the same user with
	// refreshed tokens.
	sameUser, err := authService.GetOrCreateUser(context.Background(), "google_123", "test@example.com", "Test User", "new_access_token", "refresh_token", tokenExpiry)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sameUser.ID)
	assert.Equal(t, "new_access_token", sameUser.AccessToken)

	retrieved, err := authService.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, "new_access_token", retrieved.AccessToken)
}
