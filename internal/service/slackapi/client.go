package slackapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"slack_form_bot/internal/handler"
)

// Slack error codes returned by views.open for unusable trigger ids.
var triggerErrors = map[string]bool{
	"invalid_trigger_id":   true,
	"expired_trigger_id":   true,
	"exchanged_trigger_id": true,
}

// Client implements handler.Client on top of the Slack Web API.
type Client struct {
	api *slack.Client
}

var _ handler.Client = (*Client)(nil)

func NewClient(token string, options ...slack.Option) *Client {
	return &Client{
		api: slack.New(token, options...),
	}
}

func (c *Client) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if triggerID == "" {
		return fmt.Errorf("%w: empty trigger id", handler.ErrInvalidTrigger)
	}

	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) PublishHomeView(ctx context.Context, userID string, view slack.HomeTabViewRequest) error {
	if _, err := c.api.PublishViewContext(ctx, userID, view, ""); err != nil {
		return fmt.Errorf("%w: views.publish: %w", handler.ErrClientCall, err)
	}
	return nil
}

func (c *Client) PostMessage(ctx context.Context, channel, text string, opts ...slack.MsgOption) error {
	options := append([]slack.MsgOption{slack.MsgOptionText(text, false)}, opts...)
	if _, _, err := c.api.PostMessageContext(ctx, channel, options...); err != nil {
		return fmt.Errorf("%w: chat.postMessage: %w", handler.ErrClientCall, err)
	}
	return nil
}

// classify maps a views.open failure onto the handler error taxonomy.
func classify(err error) error {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) && triggerErrors[slackErr.Err] {
		return fmt.Errorf("%w: %s", handler.ErrInvalidTrigger, slackErr.Err)
	}
	return fmt.Errorf("%w: views.open: %w", handler.ErrClientCall, err)
}
