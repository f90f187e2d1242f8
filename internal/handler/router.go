package handler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slack_form_bot/internal/model"
	"slack_form_bot/internal/view"
)

const (
	CommandEcho       = "/echo"
	CommandSampleForm = "/sample-form"

	ShortcutSampleForm = "sample-form"

	EventAppHomeOpened = "app_home_opened"
)

type handlerFunc func(ctx context.Context) (model.Ack, error)

// Router dispatches inbound envelopes to the bot's handlers.
// It holds no per-request state and is safe for concurrent use.
type Router struct {
	client Client
	logger *zap.Logger
}

func NewRouter(client Client, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		client: client,
		logger: logger,
	}
}

// Dispatch runs the handler registered for env and returns its acknowledgment.
// Envelopes without a handler fail with ErrUnroutableEvent. Handler errors
// are returned unlogged; the caller owns reporting them.
func (r *Router) Dispatch(ctx context.Context, env model.Envelope) (model.Ack, error) {
	h := r.route(env)
	if h == nil {
		return model.Ack{}, fmt.Errorf("%w: %s %q", ErrUnroutableEvent, env.Kind(), env.RouteKey())
	}

	start := time.Now()
	ack, err := h(ctx)
	if err != nil {
		return model.Ack{}, err
	}

	r.logger.Info("handled envelope",
		zap.String("kind", env.Kind()),
		zap.String("route_key", env.RouteKey()),
		zap.Stringer("ack", ack.Action),
		zap.Duration("duration", time.Since(start)))
	return ack, nil
}

// route selects the handler for env, or returns nil.
func (r *Router) route(env model.Envelope) handlerFunc {
	switch e := env.(type) {
	case model.SlashCommand:
		switch e.Command {
		case CommandEcho:
			return func(ctx context.Context) (model.Ack, error) { return r.echo(ctx, e) }
		case CommandSampleForm:
			return r.openFormFor(e.TriggerID, e.UserID)
		}

	case model.Shortcut:
		if e.CallbackID == ShortcutSampleForm {
			return r.openFormFor(e.TriggerID, e.UserID)
		}

	case model.ViewSubmission:
		if e.CallbackID == view.FormCallbackID {
			return func(ctx context.Context) (model.Ack, error) { return r.submission(ctx, e) }
		}

	case model.AppEvent:
		if e.EventType == EventAppHomeOpened {
			return func(ctx context.Context) (model.Ack, error) { return r.homeOpened(ctx, e.UserID) }
		}

	case model.BlockAction:
		if e.ActionID == view.OpenFormActionID {
			return r.openFormFor(e.TriggerID, e.UserID)
		}
	}

	return nil
}

func (r *Router) openFormFor(triggerID, userID string) handlerFunc {
	return func(ctx context.Context) (model.Ack, error) {
		return r.openForm(ctx, triggerID, userID)
	}
}
