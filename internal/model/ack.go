package model

import "github.com/slack-go/slack"

// AckAction tells the transport how to acknowledge a request
type AckAction int

const (
	// AckEmpty is a plain acknowledgment with no body.
	AckEmpty AckAction = iota
	// AckUpdateView replaces the submitted modal with View.
	AckUpdateView
)

// Ack is the synchronous response a handler owes Slack for one request
type Ack struct {
	Action AckAction
	View   *slack.ModalViewRequest
}

// EmptyAck returns a plain acknowledgment.
func EmptyAck() Ack {
	return Ack{Action: AckEmpty}
}

// UpdateViewAck returns an acknowledgment that replaces the current modal.
func UpdateViewAck(view slack.ModalViewRequest) Ack {
	return Ack{Action: AckUpdateView, View: &view}
}

func (a AckAction) String() string {
	switch a {
	case AckEmpty:
		return "empty"
	case AckUpdateView:
		return "update"
	default:
		return "unknown"
	}
}
