package transport

import "errors"

var (
	// ErrVerification means the request signature or timestamp did not check out.
	ErrVerification = errors.New("slack request verification failed")
	// ErrMalformedRequest means the body could not be decoded.
	ErrMalformedRequest = errors.New("malformed slack request")
	// ErrUnsupportedPayload means a well-formed payload of a kind the bot never handles.
	ErrUnsupportedPayload = errors.New("unsupported slack payload")
)
