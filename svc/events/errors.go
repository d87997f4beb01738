package events

import "errors"

var (
	ErrHandlerPanicked   = errors.New("events: handler panicked")
	ErrUnexpectedPayload = errors.New("events: unexpected payload type")
	ErrPublishTimeout    = errors.New("events: bus is full, event dropped")
)
