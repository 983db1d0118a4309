package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingWindow indicates the window is required but not set.
	ErrMissingWindow = errors.New("execution context: window is required")

	// ErrMissingView indicates the target view is required but not set.
	ErrMissingView = errors.New("execution context: view is required")
)
