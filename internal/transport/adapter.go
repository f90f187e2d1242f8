package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"slack_form_bot/internal/model"
)

// Dispatcher routes a decoded envelope to its handler
type Dispatcher interface {
	Dispatch(ctx context.Context, env model.Envelope) (model.Ack, error)
}

// Request is a verified, decoded inbound Slack request.
// At most one of Envelope and Challenge is set; when neither is, the
// request only needs a plain ack (e.g. an ssl_check ping).
type Request struct {
	Envelope  model.Envelope
	Challenge string
}

// Adapter turns raw Slack HTTP requests into envelopes and acks back into responses
type Adapter struct {
	signingSecret string
	dispatcher    Dispatcher
	logger        *zap.Logger
}

func NewAdapter(signingSecret string, dispatcher Dispatcher, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		signingSecret: signingSecret,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// VerifyAndParse checks the Slack signature of r and decodes its body.
// The body is left readable for later handlers.
func (a *Adapter) VerifyAndParse(r *http.Request) (Request, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return Request{}, fmt.Errorf("%w: failed to read body: %w", ErrMalformedRequest, err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err := a.verify(r.Header, body); err != nil {
		return Request{}, err
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return Request{}, fmt.Errorf("%w: bad content type: %w", ErrMalformedRequest, err)
	}

	switch mediaType {
	case "application/json":
		return parseEventsAPI(body)
	case "application/x-www-form-urlencoded":
		// ParseForm drains the body it reads, so parse a copy.
		fr := r.Clone(r.Context())
		fr.Body = io.NopCloser(bytes.NewReader(body))
		return parseForm(fr)
	default:
		return Request{}, fmt.Errorf("%w: unsupported content type %q", ErrMalformedRequest, mediaType)
	}
}

func (a *Adapter) verify(header http.Header, body []byte) error {
	sv, err := slack.NewSecretsVerifier(header, a.signingSecret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if _, err := sv.Write(body); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if err := sv.Ensure(); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	return nil
}

// eventProbe reads just enough of an Events API body to handle payloads
// that slackevents cannot decode, such as inner event types it does not know.
type eventProbe struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     struct {
		Type string `json:"type"`
		User string `json:"user"`
	} `json:"event"`
}

func parseEventsAPI(body []byte) (Request, error) {
	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err == nil {
		switch ev.Type {
		case slackevents.URLVerification:
			if uve, ok := ev.Data.(*slackevents.EventsAPIURLVerificationEvent); ok {
				return Request{Challenge: uve.Challenge}, nil
			}

		case slackevents.CallbackEvent:
			env := model.AppEvent{EventType: ev.InnerEvent.Type}
			if e, ok := ev.InnerEvent.Data.(*slackevents.AppHomeOpenedEvent); ok {
				env.UserID = e.User
				env.Tab = e.Tab
			}
			return Request{Envelope: env}, nil
		}
	}

	var probe eventProbe
	if jsonErr := json.Unmarshal(body, &probe); jsonErr != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, jsonErr)
	}

	switch {
	case probe.Type == slackevents.URLVerification && probe.Challenge != "":
		return Request{Challenge: probe.Challenge}, nil
	case probe.Type == slackevents.CallbackEvent && probe.Event.Type != "":
		// Unknown inner events still reach the router, which reports them as unroutable.
		return Request{Envelope: model.AppEvent{EventType: probe.Event.Type, UserID: probe.Event.User}}, nil
	case err != nil:
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	default:
		return Request{}, fmt.Errorf("%w: events api type %q", ErrUnsupportedPayload, probe.Type)
	}
}

func parseForm(r *http.Request) (Request, error) {
	if err := r.ParseForm(); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	if payload := r.PostForm.Get("payload"); payload != "" {
		return parseInteraction(payload)
	}

	if r.PostForm.Get("ssl_check") == "1" {
		return Request{}, nil
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if cmd.Command == "" {
		return Request{}, fmt.Errorf("%w: form has neither payload nor command", ErrMalformedRequest)
	}

	return Request{Envelope: model.SlashCommand{
		Command:     cmd.Command,
		Text:        cmd.Text,
		TriggerID:   cmd.TriggerID,
		UserID:      cmd.UserID,
		ChannelID:   cmd.ChannelID,
		ResponseURL: cmd.ResponseURL,
	}}, nil
}

func parseInteraction(payload string) (Request, error) {
	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	switch cb.Type {
	case slack.InteractionTypeShortcut, slack.InteractionTypeMessageAction:
		return Request{Envelope: model.Shortcut{
			CallbackID: cb.CallbackID,
			TriggerID:  cb.TriggerID,
			UserID:     cb.User.ID,
		}}, nil

	case slack.InteractionTypeViewSubmission:
		return Request{Envelope: model.ViewSubmission{
			CallbackID:      cb.View.CallbackID,
			TriggerID:       cb.TriggerID,
			UserID:          cb.User.ID,
			PrivateMetadata: cb.View.PrivateMetadata,
			Values:          stateValues(cb.View.State),
		}}, nil

	case slack.InteractionTypeBlockActions:
		actions := cb.ActionCallback.BlockActions
		if len(actions) == 0 {
			return Request{}, fmt.Errorf("%w: block_actions without actions", ErrMalformedRequest)
		}
		return Request{Envelope: model.BlockAction{
			ActionID:  actions[0].ActionID,
			BlockID:   actions[0].BlockID,
			TriggerID: cb.TriggerID,
			UserID:    cb.User.ID,
		}}, nil

	default:
		return Request{}, fmt.Errorf("%w: interaction type %q", ErrUnsupportedPayload, cb.Type)
	}
}

// stateValues flattens submitted view state to block id -> action id -> value.
func stateValues(state *slack.ViewState) map[string]map[string]string {
	values := map[string]map[string]string{}
	if state == nil {
		return values
	}
	for blockID, actions := range state.Values {
		values[blockID] = make(map[string]string, len(actions))
		for actionID, action := range actions {
			values[blockID][actionID] = action.Value
		}
	}
	return values
}
