package identity

import "errors"

// Sentinel kinds for identity resolution.
var (
	ErrUnknownCabinet = errors.New("unknown cabinet")
	ErrUnknownPlayer  = errors.New("unknown player")
)
