package isearch

import "errors"

// Session errors.
var (
	// ErrNoPrompt indicates the host did not show the query prompt.
	ErrNoPrompt = errors.New("isearch: host did not show a prompt")

	// ErrNoView indicates the window has no active view to search.
	ErrNoView = errors.New("isearch: window has no active view")
)
