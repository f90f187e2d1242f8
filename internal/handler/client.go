package handler

import (
	"context"

	"github.com/slack-go/slack"
)

// Client is the outbound Slack capability handlers depend on.
type Client interface {
	// OpenView opens a modal. Fails with ErrInvalidTrigger when the trigger
	// id is empty or no longer valid.
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	// PublishHomeView publishes the App Home tab of a user.
	PublishHomeView(ctx context.Context, userID string, view slack.HomeTabViewRequest) error
	// PostMessage posts text to a channel, user id (DM) or, with
	// slack.MsgOptionResponseURL, a response URL.
	PostMessage(ctx context.Context, channel, text string, opts ...slack.MsgOption) error
}
