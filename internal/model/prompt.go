package model

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a user's stored filter prompt: the free-text instruction that
// tells the agent how to categorize and label that user's email.
type Prompt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPrompt(userID, prompt string) *Prompt {
	now := time.Now()
	return &Prompt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Prompt:    prompt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
