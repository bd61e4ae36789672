package gmail

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"gmail-reaper/internal/logger"
)

// LabelAPI is the set of Gmail label operations the agent may be granted.
// LabelClient implements it against the real Gmail API; tests use a fake.
type LabelAPI interface {
	AddLabels(ctx context.Context, messageID string, labelIDs []string) error
	RemoveLabels(ctx context.Context, messageID string, labelIDs []string) error
	ModifyThreadLabels(ctx context.Context, threadID string, addLabelIDs, removeLabelIDs []string) error
	CreateLabel(ctx context.Context, name string) (*gmail.Label, error)
	PatchLabel(ctx context.Context, labelID, name string) (*gmail.Label, error)
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
}

type labelClient struct {
	service *gmail.Service
	logger  *logger.Logger
}

// NewLabelClient creates a Gmail label client authenticated as the user that
// owns accessToken.
func NewLabelClient(accessToken string, logger *logger.Logger) (LabelAPI, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}

	service, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &labelClient{
		service: service,
		logger:  logger,
	}, nil
}

type oauth2Transport struct {
	token string
}

func (t *oauth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// All operations act on the authenticated user's own mailbox.
const gmailUser = "me"

func (c *labelClient) AddLabels(ctx context.Context, messageID string, labelIDs []string) error {
	_, err := c.service.Users.Messages.Modify(gmailUser, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: labelIDs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to add labels to message %s: %w", messageID, err)
	}
	return nil
}

func (c *labelClient) RemoveLabels(ctx context.Context, messageID string, labelIDs []string) error {
	_, err := c.service.Users.Messages.Modify(gmailUser, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: labelIDs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to remove labels from message %s: %w", messageID, err)
	}
	return nil
}

func (c *labelClient) ModifyThreadLabels(ctx context.Context, threadID string, addLabelIDs, removeLabelIDs []string) error {
	_, err := c.service.Users.Threads.Modify(gmailUser, threadID, &gmail.ModifyThreadRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to modify labels on thread %s: %w", threadID, err)
	}
	return nil
}

func (c *labelClient) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	label, err := c.service.Users.Labels.Create(gmailUser, &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	c.logger.Info("Created Gmail label:", name)
	return label, nil
}

func (c *labelClient) PatchLabel(ctx context.Context, labelID, name string) (*gmail.Label, error) {
	label, err := c.service.Users.Labels.Patch(gmailUser, labelID, &gmail.Label{
		Name: name,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to patch label %s: %w", labelID, err)
	}
	return label, nil
}

func (c *labelClient) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	resp, err := c.service.Users.Labels.List(gmailUser).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return resp.Labels, nil
}
