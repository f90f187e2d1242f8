package handler

import (
	"context"
	"sync"

	"github.com/slack-go/slack"
)

type openViewCall struct {
	TriggerID string
	View      slack.ModalViewRequest
}

type publishCall struct {
	UserID string
	View   slack.HomeTabViewRequest
}

type postCall struct {
	Channel string
	Text    string
	Opts    int
}

// fakeClient records every outbound call. Set the *Err fields to make
// the matching call fail.
type fakeClient struct {
	mu        sync.Mutex
	opened    []openViewCall
	published []publishCall
	posted    []postCall

	openErr    error
	publishErr error
	postErr    error
}

func (c *fakeClient) OpenView(_ context.Context, triggerID string, view slack.ModalViewRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened = append(c.opened, openViewCall{TriggerID: triggerID, View: view})
	return c.openErr
}

func (c *fakeClient) PublishHomeView(_ context.Context, userID string, view slack.HomeTabViewRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, publishCall{UserID: userID, View: view})
	return c.publishErr
}

func (c *fakeClient) PostMessage(_ context.Context, channel, text string, opts ...slack.MsgOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posted = append(c.posted, postCall{Channel: channel, Text: text, Opts: len(opts)})
	return c.postErr
}

func (c *fakeClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.opened) + len(c.published) + len(c.posted)
}
