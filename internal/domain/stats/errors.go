package stats

import "errors"

// Sentinel kinds for codec errors.
var (
	ErrEncode = errors.New("stats encode failed")
	ErrDecode = errors.New("stats decode failed")
)
