package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("best score not found")
	ErrHistoryAppend = errors.New("history append failed")
)
