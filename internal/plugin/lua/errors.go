package lua

import "errors"

var (
	// ErrStateClosed is returned by a State after Close.
	ErrStateClosed = errors.New("lua: state closed")

	// ErrExecutionTimeout is returned when a script outlives its deadline.
	ErrExecutionTimeout = errors.New("lua: script timed out")
)
