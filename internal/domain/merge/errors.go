package merge

import "errors"

// Sentinel kinds for merge errors.
var (
	// ErrInvalidSubmission marks a submission whose clear type or grade
	// is outside its closed enumeration. The submission is dropped
	// whole; no record is created or mutated for it.
	ErrInvalidSubmission = errors.New("invalid submission")
)
