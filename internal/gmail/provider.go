package gmail

import (
	"context"
	"fmt"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/repository"
)

// ToolsetProvider builds the per-user label capability set handed to the
// agent. Tokens are looked up at acquisition time so a reconnected user's
// fresh token is picked up without restarting the service.
type ToolsetProvider struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewToolsetProvider(userRepo repository.UserRepository, logger *logger.Logger) *ToolsetProvider {
	return &ToolsetProvider{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ToolsetForUser returns the label toolset scoped to the given user, or an
// error when the user is unknown or has no usable access token.
func (p *ToolsetProvider) ToolsetForUser(ctx context.Context, userID string) (ai.Toolset, error) {
	user, err := p.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	if user.AccessToken == "" {
		return nil, fmt.Errorf("access token not available for user: %s", userID)
	}

	api, err := NewLabelClient(user.AccessToken, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}

	return NewToolset(api, p.logger), nil
}
