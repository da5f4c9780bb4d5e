package uniset

import "errors"

// ErrIndexOutOfRange flags a start or limit position outside of the text.
// ErrInvalidArgument is returned for a missing set or text, or an unknown span condition.
// ErrStepBudgetExceeded is returned if a span with a step budget has used it up.
var (
	ErrIndexOutOfRange    = errors.New("uniset: index out of range")
	ErrInvalidArgument    = errors.New("uniset: invalid argument")
	ErrStepBudgetExceeded = errors.New("uniset: span step budget exceeded")
)
