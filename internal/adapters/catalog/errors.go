package catalog

import "errors"

// Sentinel kinds for catalog lookups.
var (
	ErrUnknownChart = errors.New("unknown chart")
)
