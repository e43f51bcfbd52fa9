package relay

import "errors"

var (
	ErrSessionQueueFull = errors.New("session send queue is full")
	ErrInvalidEnvelope  = errors.New("invalid envelope")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrMissingRoom      = errors.New("room id is required")
)
