package service

import (
	"context"
	"fmt"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
)

type processor struct {
	toolsets ToolsetProvider
	runner   AgentRunner
	logger   *logger.Logger
}

func NewProcessor(toolsets ToolsetProvider, runner AgentRunner, logger *logger.Logger) Processor {
	return &processor{
		toolsets: toolsets,
		runner:   runner,
		logger:   logger,
	}
}

// Process runs detached from any request, so it must not let anything escape:
// panics are recovered and every error path ends in a failure outcome.
func (p *processor) Process(ctx context.Context, msg *model.GmailMessage, filterPrompt string) (outcome model.ProcessingOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic processing email", msg.ID, ":", r)
			outcome = model.FailedOutcome(msg.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	if msg.UserID == "" {
		p.logger.Error("Email", msg.ID, "missing user_id")
		return model.FailedOutcome(msg.ID, fmt.Errorf("message missing user_id"))
	}
	if msg.ConnectionID == "" {
		p.logger.Error("Email", msg.ID, "missing connection_id")
		return model.FailedOutcome(msg.ID, fmt.Errorf("message missing connection_id"))
	}

	p.logger.Info("Processing email:", msg.Subject, "from", msg.Sender)
	p.logger.Info("User:", msg.UserID, "Connection:", msg.ConnectionID)
	p.logger.Debug("Email labels:", msg.Labels)

	toolset, err := p.toolsets.ToolsetForUser(ctx, msg.UserID)
	if err != nil {
		p.logger.Error("No Gmail tools available for user", msg.UserID, ":", err)
		return p.fail(msg, fmt.Errorf("failed to acquire toolset: %w", err))
	}
	if toolset == nil || len(toolset.Tools()) == 0 {
		p.logger.Error("Empty toolset for user", msg.UserID)
		return p.fail(msg, fmt.Errorf("no tools available for user %s", msg.UserID))
	}

	instructions := fmt.Sprintf("%s\n\n## Email\n%s\n## Message ID\n%s", filterPrompt, msg.Body(), msg.ID)

	reply, err := p.runner.Run(ctx, ai.ReaperSystemPrompt, instructions, toolset)
	if err != nil {
		p.logger.Error("Agent run failed for email", msg.ID, ":", err)
		return p.fail(msg, fmt.Errorf("agent execution failed: %w", err))
	}

	p.logger.Info("Successfully processed email", msg.ID)
	p.logger.Debug("Agent result:", reply)
	return model.SucceededOutcome(msg.ID)
}

// fail records enough context to diagnose the failure without the payload.
func (p *processor) fail(msg *model.GmailMessage, err error) model.ProcessingOutcome {
	p.logger.Errorf("Failed email details - Subject: %s, Sender: %s, User: %s", msg.Subject, msg.Sender, msg.UserID)
	return model.FailedOutcome(msg.ID, err)
}
