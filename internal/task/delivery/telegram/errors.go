package telegram

import "errors"

var (
	// ErrMalformedCallback means a callback payload could not be parsed.
	ErrMalformedCallback = errors.New("malformed callback data")
)
