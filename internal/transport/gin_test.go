package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"slack_form_bot/internal/config"
	"slack_form_bot/internal/handler"
	"slack_form_bot/internal/view"
)

func newTestEngine(t *testing.T, client handler.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: config.Test}
	return NewEngine(cfg, NewAdapter(testSigningSecret, handler.NewRouter(client, nil), nil))
}

func serve(e *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestHandleRequest_ShortcutOpensModal(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := interactionBody(`{"type":"shortcut","callback_id":"sample-form","trigger_id":"T12345","user":{"id":"U12345"}}`)
	w := serve(e, signedRequest(t, "/slack/interactions", formType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.Len(t, c.calls, 1)
	assert.Equal(t, "OpenView", c.calls[0].Method)
	assert.Equal(t, "T12345", c.calls[0].Target)
	assert.Equal(t, view.BuildInputModal("U12345"), c.calls[0].View)
}

func TestHandleRequest_SubmissionUpdatesView(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := interactionBody(`{
		"type": "view_submission",
		"user": {"id": "U12345"},
		"view": {
			"callback_id": "form_submission",
			"private_metadata": "U12345",
			"state": {"values": {"input_block": {"input_value": {"type": "plain_text_input", "value": "テスト入力"}}}}
		}
	}`)
	w := serve(e, signedRequest(t, "/slack/events", formType, body))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, c.calls, 1)
	assert.Equal(t, "PostMessage", c.calls[0].Method)
	assert.Equal(t, "U12345", c.calls[0].Target)
	assert.Equal(t, "あなたが入力した情報: *テスト入力*", c.calls[0].Text)

	var got struct {
		ResponseAction string `json:"response_action"`
		View           struct {
			Type       string `json:"type"`
			CallbackID string `json:"callback_id"`
			Close      struct {
				Text string `json:"text"`
			} `json:"close"`
			Submit *json.RawMessage `json:"submit"`
			Blocks []struct {
				Type string `json:"type"`
				Text struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"text"`
			} `json:"blocks"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "update", got.ResponseAction)
	assert.Equal(t, "modal", got.View.Type)
	assert.Equal(t, "form_submission", got.View.CallbackID)
	assert.Equal(t, "閉じる", got.View.Close.Text)
	assert.Nil(t, got.View.Submit)
	require.Len(t, got.View.Blocks, 1)
	assert.Equal(t, "section", got.View.Blocks[0].Type)
	assert.Equal(t, "mrkdwn", got.View.Blocks[0].Text.Type)
	assert.Equal(t, "あなたが入力した情報: *テスト入力*", got.View.Blocks[0].Text.Text)
}

func TestHandleRequest_Echo(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := formBody(map[string]string{"command": "/echo", "text": "hello", "channel_id": "C1"})
	w := serve(e, signedRequest(t, "/slack/commands", formType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.Len(t, c.calls, 1)
	assert.Equal(t, "PostMessage", c.calls[0].Method)
	assert.Equal(t, "hello", c.calls[0].Text)
}

func TestHandleRequest_HomeOpened(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := `{"type":"event_callback","event":{"type":"app_home_opened","user":"U1","tab":"home"}}`
	w := serve(e, signedRequest(t, "/slack/events", jsonType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, c.calls, 1)
	assert.Equal(t, "PublishHomeView", c.calls[0].Method)
	assert.Equal(t, "U1", c.calls[0].Target)
	assert.IsType(t, slack.HomeTabViewRequest{}, c.calls[0].View)
}

func TestHandleRequest_URLVerification(t *testing.T) {
	e := newTestEngine(t, &recordingClient{})

	body := `{"type":"url_verification","challenge":"abc123"}`
	w := serve(e, signedRequest(t, "/slack/events", jsonType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHandleRequest_Unroutable(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := formBody(map[string]string{"command": "/unknown", "text": "x"})
	w := serve(e, signedRequest(t, "/slack/commands", formType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, c.calls)
}

func TestHandleRequest_Unsupported(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := interactionBody(`{"type":"view_closed"}`)
	w := serve(e, signedRequest(t, "/slack/interactions", formType, body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, c.calls)
}

func TestHandleRequest_HandlerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)
	c := &recordingClient{err: handler.ErrInvalidTrigger}
	e := NewEngine(&config.Config{Environment: config.Test},
		NewAdapter(testSigningSecret, handler.NewRouter(c, l), l))

	body := interactionBody(`{"type":"block_actions","trigger_id":"T1","user":{"id":"U1"},"actions":[{"action_id":"sample_form_button","block_id":"b1","type":"button"}]}`)
	w := serve(e, signedRequest(t, "/slack/interactions", formType, body))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.calls, 1)

	failures := logs.FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, failures, 1)
	assert.Equal(t, "failed to handle slack request", failures[0].Message)
	assert.Equal(t, "sample_form_button", failures[0].ContextMap()["route_key"])
}

func TestHandleRequest_Rejected(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := formBody(map[string]string{"command": "/echo", "text": "x"})
	req := signedRequest(t, "/slack/commands", formType, body)
	req.Header.Set("X-Slack-Signature", "v0=deadbeef")
	w := serve(e, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, c.calls)

	w = serve(e, signedRequest(t, "/slack/events", jsonType, "{"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRequest_RetrySkipped(t *testing.T) {
	c := &recordingClient{}
	e := newTestEngine(t, c)

	body := `{"type":"event_callback","event":{"type":"app_home_opened","user":"U1"}}`
	req := signedRequest(t, "/slack/events", jsonType, body)
	req.Header.Set("X-Slack-Retry-Num", "1")
	req.Header.Set("X-Slack-Retry-Reason", "http_timeout")
	w := serve(e, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok (retry skipped)", w.Body.String())
	assert.Empty(t, c.calls)
}

func TestHealthz(t *testing.T) {
	e := newTestEngine(t, &recordingClient{})

	w := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
