package ai

import (
	"context"
	"fmt"

	"gmail-reaper/internal/logger"
)

// maxIterations caps the tool loop so a confused model cannot run forever.
const maxIterations = 10

// Toolset is the bounded capability set granted to the agent for one run. The
// agent can only reach the operations the toolset chooses to expose.
type Toolset interface {
	Tools() []Tool
	Execute(ctx context.Context, name, arguments string) (string, error)
}

// Runner drives an agent conversation to completion, executing requested tool
// calls and feeding their results back until the model stops calling tools.
type Runner struct {
	client AgentClient
	logger *logger.Logger
}

func NewRunner(client AgentClient, logger *logger.Logger) *Runner {
	return &Runner{
		client: client,
		logger: logger,
	}
}

// Run executes the agent with the given persona and instructions, granting it
// exactly the operations in toolset. It returns the agent's final text reply.
func (r *Runner) Run(ctx context.Context, systemPrompt, instructions string, toolset Toolset) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: instructions},
	}
	tools := toolset.Tools()

	for i := 0; i < maxIterations; i++ {
		resp, err := r.client.ChatWithTools(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("agent turn %d failed: %w", i+1, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result, err := toolset.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				r.logger.Error("Tool call failed:", call.Name, err)
				// The model gets the error back and can decide how to proceed.
				result = fmt.Sprintf("error: %v", err)
			}
			messages = append(messages, Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("agent did not finish within %d iterations", maxIterations)
}
