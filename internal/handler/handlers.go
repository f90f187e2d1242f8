package handler

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"slack_form_bot/internal/model"
	"slack_form_bot/internal/view"
)

// echo replies with the command text exactly as typed.
func (r *Router) echo(ctx context.Context, cmd model.SlashCommand) (model.Ack, error) {
	var opts []slack.MsgOption
	if cmd.ResponseURL != "" {
		opts = append(opts, slack.MsgOptionResponseURL(cmd.ResponseURL, slack.ResponseTypeEphemeral))
	}

	if err := r.client.PostMessage(ctx, cmd.ChannelID, cmd.Text, opts...); err != nil {
		return model.Ack{}, fmt.Errorf("failed to echo command text: %w", err)
	}
	return model.EmptyAck(), nil
}

// openForm opens the input modal. It only depends on the trigger and
// the user, so slash commands, shortcuts and buttons all share it.
func (r *Router) openForm(ctx context.Context, triggerID, userID string) (model.Ack, error) {
	if err := r.client.OpenView(ctx, triggerID, view.BuildInputModal(userID)); err != nil {
		return model.Ack{}, fmt.Errorf("failed to open form: %w", err)
	}
	return model.EmptyAck(), nil
}

// submission DMs the submitted value to the user who opened the form,
// then swaps the modal for the result view.
func (r *Router) submission(ctx context.Context, sub model.ViewSubmission) (model.Ack, error) {
	value, ok := sub.Value(view.InputBlockID, view.InputActionID)
	if !ok {
		return model.Ack{}, fmt.Errorf("%w: missing %s.%s", ErrMalformedSubmission, view.InputBlockID, view.InputActionID)
	}

	// Private metadata is trusted as-is; there is no session to check it against.
	if userID := sub.PrivateMetadata; userID != "" {
		if err := r.client.PostMessage(ctx, userID, view.SubmissionText(value)); err != nil {
			return model.Ack{}, fmt.Errorf("failed to send submission DM: %w", err)
		}
	}

	return model.UpdateViewAck(view.BuildResultView(value)), nil
}

func (r *Router) homeOpened(ctx context.Context, userID string) (model.Ack, error) {
	if err := r.client.PublishHomeView(ctx, userID, view.BuildHomeView()); err != nil {
		return model.Ack{}, fmt.Errorf("failed to publish home view: %w", err)
	}
	return model.EmptyAck(), nil
}
