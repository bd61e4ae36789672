package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmail-reaper/internal/repository"
	"gmail-reaper/internal/repository/memory"
)

func TestGetUserPromptFallsBackToDefault(t *testing.T) {
	promptRepo := memory.NewInMemoryPromptRepository()
	svc := NewPromptService(promptRepo, quietLogger())

	prompt := svc.GetUserPrompt(context.Background(), "user_1", "the default")
	assert.Equal(t, "the default", prompt)
}

func TestSetAndGetUserPrompt(t *testing.T) {
	promptRepo := memory.NewInMemoryPromptRepository()
	svc := NewPromptService(promptRepo, quietLogger())

	stored, err := svc.SetUserPrompt(context.Background(), "user_1", "archive newsletters")
	require.NoError(t, err)
	assert.Equal(t, "user_1", stored.UserID)
	assert.NotEmpty(t, stored.ID)

	prompt := svc.GetUserPrompt(context.Background(), "user_1", "the default")
	assert.Equal(t, "archive newsletters", prompt)

	// Other users still resolve to the default.
	other := svc.GetUserPrompt(context.Background(), "user_2", "the default")
	assert.Equal(t, "the default", other)
}

func TestSetUserPromptOverwrites(t *testing.T) {
	promptRepo := memory.NewInMemoryPromptRepository()
	svc := NewPromptService(promptRepo, quietLogger())

	_, err := svc.SetUserPrompt(context.Background(), "user_1", "first version")
	require.NoError(t, err)
	_, err = svc.SetUserPrompt(context.Background(), "user_1", "second version")
	require.NoError(t, err)

	prompt := svc.GetUserPrompt(context.Background(), "user_1", "default")
	assert.Equal(t, "second version", prompt)
}

func TestGetStoredPrompt(t *testing.T) {
	promptRepo := memory.NewInMemoryPromptRepository()
	svc := NewPromptService(promptRepo, quietLogger())

	_, err := svc.GetStoredPrompt(context.Background(), "user_1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.SetUserPrompt(context.Background(), "user_1", "keep receipts")
	require.NoError(t, err)

	stored, err := svc.GetStoredPrompt(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "keep receipts", stored.Prompt)
}
