package handler

import "errors"

var (
	// ErrUnroutableEvent means no handler is registered for the envelope.
	ErrUnroutableEvent = errors.New("unroutable event")
	// ErrInvalidTrigger means Slack rejected a trigger id as missing,
	// invalid or expired. Trigger ids are single-use, so this is never retried.
	ErrInvalidTrigger = errors.New("invalid trigger id")
	// ErrMalformedSubmission means a view submission lacks the form field,
	// i.e. the deployed view and the handler disagree on the schema.
	ErrMalformedSubmission = errors.New("malformed view submission")
	// ErrClientCall wraps any other outbound Slack API failure.
	ErrClientCall = errors.New("slack api call failed")
)
