package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic indicates a handler, interceptor or hook panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action is invalid.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrRewriteLimit indicates interceptors rewrote an action more times
	// than the configured limit.
	ErrRewriteLimit = errors.New("dispatcher: rewrite limit exceeded")

	// ErrRewriteLoop indicates interceptors rewrote an action back into a
	// form it already had.
	ErrRewriteLoop = errors.New("dispatcher: rewrite loop")
)
