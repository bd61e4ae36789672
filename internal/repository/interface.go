package repository

import (
	"context"
	"errors"

	"gmail-reaper/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// PromptRepository defines the interface for filter prompt operations
type PromptRepository interface {
	Upsert(ctx context.Context, prompt *model.Prompt) error
	FindByUserID(ctx context.Context, userID string) (*model.Prompt, error)
	FindFirst(ctx context.Context) (*model.Prompt, error)
	Delete(ctx context.Context, userID string) error
}
