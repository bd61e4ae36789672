package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmail-reaper/internal/model"
	"gmail-reaper/internal/repository"
)

func TestUserRepositoryCRUD(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	user := model.NewUser("google_1", "alice@example.com", "Alice", "access", "refresh", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byGoogleID, err := repo.FindByGoogleID(ctx, "google_1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byGoogleID.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	user.AccessToken = "rotated"
	require.NoError(t, repo.Update(ctx, user))
	updated, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", updated.AccessToken)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindByGoogleID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, model.NewUser("g", "e", "n", "a", "r", time.Now()))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPromptRepositoryUpsert(t *testing.T) {
	repo := NewInMemoryPromptRepository()
	ctx := context.Background()

	first := model.NewPrompt("user_1", "archive newsletters")
	require.NoError(t, repo.Upsert(ctx, first))

	stored, err := repo.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "archive newsletters", stored.Prompt)

	// A second upsert for the same user replaces the prompt.
	require.NoError(t, repo.Upsert(ctx, model.NewPrompt("user_1", "star invoices")))
	stored, err = repo.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "star invoices", stored.Prompt)
}

func TestPromptRepositoryFindFirst(t *testing.T) {
	repo := NewInMemoryPromptRepository()
	ctx := context.Background()

	_, err := repo.FindFirst(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, model.NewPrompt("user_1", "first")))
	require.NoError(t, repo.Upsert(ctx, model.NewPrompt("user_2", "second")))

	first, err := repo.FindFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user_1", first.UserID)

	// Deleting the first user promotes the next stored prompt.
	require.NoError(t, repo.Delete(ctx, "user_1"))
	first, err = repo.FindFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user_2", first.UserID)
}
