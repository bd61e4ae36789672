package gmail

import (
	"context"
	"encoding/json"
	"fmt"

	"gmail-reaper/internal/ai"
	"gmail-reaper/internal/logger"
)

// Tool names exposed to the agent. These six operations are the entire
// capability surface an agent invocation receives; nothing else is callable.
const (
	ToolAddLabel           = "GMAIL_ADD_LABEL_TO_EMAIL"
	ToolModifyThreadLabels = "GMAIL_MODIFY_THREAD_LABELS"
	ToolPatchLabel         = "GMAIL_PATCH_LABEL"
	ToolRemoveLabel        = "GMAIL_REMOVE_LABEL"
	ToolCreateLabel        = "GMAIL_CREATE_LABEL"
	ToolListLabels         = "GMAIL_LIST_LABELS"
)

// Toolset adapts a LabelAPI into the agent tool interface.
type Toolset struct {
	api    LabelAPI
	logger *logger.Logger
}

func NewToolset(api LabelAPI, logger *logger.Logger) *Toolset {
	return &Toolset{
		api:    api,
		logger: logger,
	}
}

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func (t *Toolset) Tools() []ai.Tool {
	return []ai.Tool{
		{
			Name:        ToolAddLabel,
			Description: "Add one or more labels to an email message.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"message_id": map[string]any{"type": "string", "description": "The ID of the message to label."},
					"label_ids":  stringArray("IDs of the labels to add."),
				},
				"required": []string{"message_id", "label_ids"},
			},
		},
		{
			Name:        ToolModifyThreadLabels,
			Description: "Add and/or remove labels on an entire email thread.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"thread_id":        map[string]any{"type": "string", "description": "The ID of the thread to modify."},
					"add_label_ids":    stringArray("IDs of the labels to add."),
					"remove_label_ids": stringArray("IDs of the labels to remove."),
				},
				"required": []string{"thread_id"},
			},
		},
		{
			Name:        ToolPatchLabel,
			Description: "Rename an existing label.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label_id": map[string]any{"type": "string", "description": "The ID of the label to rename."},
					"name":     map[string]any{"type": "string", "description": "The new label name."},
				},
				"required": []string{"label_id", "name"},
			},
		},
		{
			Name:        ToolRemoveLabel,
			Description: "Remove one or more labels from an email message.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"message_id": map[string]any{"type": "string", "description": "The ID of the message."},
					"label_ids":  stringArray("IDs of the labels to remove."),
				},
				"required": []string{"message_id", "label_ids"},
			},
		},
		{
			Name:        ToolCreateLabel,
			Description: "Create a new label in the user's mailbox.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "description": "The name of the label to create."},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        ToolListLabels,
			Description: "List all labels in the user's mailbox with their IDs.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

func (t *Toolset) Execute(ctx context.Context, name, arguments string) (string, error) {
	switch name {
	case ToolAddLabel:
		var args struct {
			MessageID string   `json:"message_id"`
			LabelIDs  []string `json:"label_ids"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := t.api.AddLabels(ctx, args.MessageID, args.LabelIDs); err != nil {
			return "", err
		}
		return "labels added", nil

	case ToolModifyThreadLabels:
		var args struct {
			ThreadID       string   `json:"thread_id"`
			AddLabelIDs    []string `json:"add_label_ids"`
			RemoveLabelIDs []string `json:"remove_label_ids"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := t.api.ModifyThreadLabels(ctx, args.ThreadID, args.AddLabelIDs, args.RemoveLabelIDs); err != nil {
			return "", err
		}
		return "thread labels modified", nil

	case ToolPatchLabel:
		var args struct {
			LabelID string `json:"label_id"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		label, err := t.api.PatchLabel(ctx, args.LabelID, args.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("label %s renamed to %s", label.Id, label.Name), nil

	case ToolRemoveLabel:
		var args struct {
			MessageID string   `json:"message_id"`
			LabelIDs  []string `json:"label_ids"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := t.api.RemoveLabels(ctx, args.MessageID, args.LabelIDs); err != nil {
			return "", err
		}
		return "labels removed", nil

	case ToolCreateLabel:
		var args struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		label, err := t.api.CreateLabel(ctx, args.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created label %s with id %s", label.Name, label.Id), nil

	case ToolListLabels:
		labels, err := t.api.ListLabels(ctx)
		if err != nil {
			return "", err
		}
		out, err := json.Marshal(labels)
		if err != nil {
			return "", fmt.Errorf("failed to encode labels: %w", err)
		}
		return string(out), nil

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}
