package protocol

import "errors"

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrLink           = errors.New("radio link failure")
	ErrNoData         = errors.New("no frame queued")
	ErrInvalidChannel = errors.New("invalid channel (valid range: 0-125)")
	ErrInvalidAddress = errors.New("invalid address (want 5 bytes)")
	ErrInvalidConfig  = errors.New("invalid link configuration")
)
