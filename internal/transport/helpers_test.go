package transport

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"
)

const testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"

// signedRequest builds a request signed the way Slack signs its webhooks.
func signedRequest(t *testing.T, path, contentType, body string) *http.Request {
	t.Helper()
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return signedRequestAt(t, path, contentType, body, ts, testSigningSecret)
}

func signedRequestAt(t *testing.T, path, contentType, body, ts, secret string) *http.Request {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func formBody(values map[string]string) string {
	v := url.Values{}
	for k, s := range values {
		v.Set(k, s)
	}
	return v.Encode()
}

func interactionBody(payload string) string {
	return url.Values{"payload": {payload}}.Encode()
}

type recordedCall struct {
	Method string
	Target string
	Text   string
	View   any
}

// recordingClient is a handler.Client that records calls in order.
type recordingClient struct {
	mu    sync.Mutex
	calls []recordedCall
	err   error
}

func (c *recordingClient) record(call recordedCall) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	return c.err
}

func (c *recordingClient) OpenView(_ context.Context, triggerID string, view slack.ModalViewRequest) error {
	return c.record(recordedCall{Method: "OpenView", Target: triggerID, View: view})
}

func (c *recordingClient) PublishHomeView(_ context.Context, userID string, view slack.HomeTabViewRequest) error {
	return c.record(recordedCall{Method: "PublishHomeView", Target: userID, View: view})
}

func (c *recordingClient) PostMessage(_ context.Context, channel, text string, _ ...slack.MsgOption) error {
	return c.record(recordedCall{Method: "PostMessage", Target: channel, Text: text})
}
