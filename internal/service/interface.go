package service

import (
	"context"
	"time"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/model"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type PromptService interface {
	// GetUserPrompt resolves the filter prompt for a user, falling back to
	// defaultPrompt when none is stored or the lookup fails.
	GetUserPrompt(ctx context.Context, userID, defaultPrompt string) string
	SetUserPrompt(ctx context.Context, userID, prompt string) (*model.Prompt, error)
	GetStoredPrompt(ctx context.Context, userID string) (*model.Prompt, error)
}

// Processor runs the triage agent for one message and reports the outcome.
// It never panics and never returns an error: every failure is folded into
// the outcome because the caller is a detached task with nobody to report to.
type Processor interface {
	Process(ctx context.Context, msg *model.GmailMessage, filterPrompt string) model.ProcessingOutcome
}

// Dispatcher schedules processing of a message after the webhook response.
// The default implementation runs each message on its own goroutine; a
// durable queue can be swapped in without touching the Processor contract.
type Dispatcher interface {
	Dispatch(msg *model.GmailMessage, filterPrompt string)
}

// ToolsetProvider acquires the per-user label capability set for a run.
type ToolsetProvider interface {
	ToolsetForUser(ctx context.Context, userID string) (ai.Toolset, error)
}

// AgentRunner executes the agent conversation to completion.
type AgentRunner interface {
	Run(ctx context.Context, systemPrompt, instructions string, toolset ai.Toolset) (string, error)
}
