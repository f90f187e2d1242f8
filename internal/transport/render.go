package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"slack_form_bot/internal/model"
)

// Response is the rendered HTTP acknowledgment
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Render serializes an ack into the response Slack expects.
func Render(ack model.Ack) (Response, error) {
	switch ack.Action {
	case model.AckEmpty:
		return Response{StatusCode: http.StatusOK, ContentType: "text/plain; charset=utf-8"}, nil

	case model.AckUpdateView:
		if ack.View == nil {
			return Response{}, fmt.Errorf("update ack without a view")
		}
		body, err := json.Marshal(slack.NewUpdateViewSubmissionResponse(ack.View))
		if err != nil {
			return Response{}, fmt.Errorf("failed to marshal view submission response: %w", err)
		}
		return Response{StatusCode: http.StatusOK, ContentType: "application/json; charset=utf-8", Body: body}, nil

	default:
		return Response{}, fmt.Errorf("unknown ack action %d", ack.Action)
	}
}
