package service

import (
	"context"

	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
	"gmail-reaper/internal/repository"
)

type promptService struct {
	promptRepo repository.PromptRepository
	logger     *logger.Logger
}

func NewPromptService(promptRepo repository.PromptRepository, logger *logger.Logger) PromptService {
	return &promptService{
		promptRepo: promptRepo,
		logger:     logger,
	}
}

// GetUserPrompt never fails: a missing prompt or a storage error both resolve
// to the default so webhook processing is not blocked on the prompt store.
func (s *promptService) GetUserPrompt(ctx context.Context, userID, defaultPrompt string) string {
	prompt, err := s.promptRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err != repository.ErrNotFound {
			s.logger.Error("Error fetching user prompt:", err)
		} else {
			s.logger.Info("No custom prompt found for user", userID, "- using default")
		}
		return defaultPrompt
	}

	s.logger.Info("Using custom prompt for user", userID)
	return prompt.Prompt
}

func (s *promptService) SetUserPrompt(ctx context.Context, userID, text string) (*model.Prompt, error) {
	prompt := model.NewPrompt(userID, text)
	if err := s.promptRepo.Upsert(ctx, prompt); err != nil {
		s.logger.Error("Failed to store prompt for user", userID, ":", err)
		return nil, err
	}
	return prompt, nil
}

func (s *promptService) GetStoredPrompt(ctx context.Context, userID string) (*model.Prompt, error) {
	return s.promptRepo.FindByUserID(ctx, userID)
}
