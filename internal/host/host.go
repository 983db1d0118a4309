// Package host defines the capabilities the core consumes from the editor
// that embeds it.
//
// The core never draws, stores text, or moves cursors on its own. It reads
// and replaces a view's selection, asks the view for literal matches, adds
// and removes named highlights, and shows a single-line query prompt. All
// calls happen on the host's event loop; implementations need not be
// goroutine-safe.
package host

import (
	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/input"
)

// ViewID is a stable identity for a buffer view.
type ViewID string

// WindowID is a stable identity for a window.
type WindowID string

// Style describes how a highlight is drawn.
type Style struct {
	// Scope names the theme entry the color is taken from.
	Scope string

	// Outline draws the region without fill.
	Outline bool
}

// View is one buffer view.
type View interface {
	// ID returns the view identity.
	ID() ViewID

	// Len returns the buffer length.
	Len() int

	// Selection returns a copy of the live selection, ordered and disjoint.
	Selection() []cursor.Span

	// SetSelection atomically replaces the live selection.
	SetSelection(spans []cursor.Span)

	// LineSpan returns the forward span covering every full line touched
	// by s, excluding the final line break.
	LineSpan(s cursor.Span) cursor.Span

	// FindAll returns every non-overlapping literal match of query in
	// ascending order.
	FindAll(query string, caseSensitive bool) []cursor.Span

	// Show scrolls s into view.
	Show(s cursor.Span)

	// AddHighlight draws spans under name, replacing any previous spans
	// registered under the same name.
	AddHighlight(name string, spans []cursor.Span, style Style)

	// RemoveHighlight removes the highlight registered under name.
	RemoveHighlight(name string)

	// SetStatus shows text in the status slot key.
	SetStatus(key, text string)

	// EraseStatus clears the status slot key.
	EraseStatus(key string)
}

// PromptHandler receives prompt callbacks.
type PromptHandler struct {
	OnChange func(text string)
	OnDone   func(text string)
	OnCancel func()
}

// Prompt is a single-line input panel.
type Prompt interface {
	// Text returns the current prompt text.
	Text() string

	// SetText replaces the prompt text and fires OnChange.
	SetText(text string)

	// IsShowing reports whether the prompt is still open.
	IsShowing() bool
}

// Window owns views and at most one prompt.
type Window interface {
	// ID returns the window identity.
	ID() WindowID

	// ActiveView returns the view that has (or last had) focus.
	ActiveView() View

	// ShowPrompt opens the prompt, or returns the open one. It returns nil
	// if no prompt could be shown.
	ShowPrompt(caption, initial string, h PromptHandler) Prompt

	// HidePrompt closes the prompt. If it was showing, OnCancel fires.
	HidePrompt()

	// FocusPrompt gives keyboard focus to the prompt.
	FocusPrompt()
}

// Executor runs a command that passed interception.
type Executor interface {
	// Execute runs action against the view, or against the prompt of w
	// when inPrompt is set.
	Execute(w Window, v View, inPrompt bool, action input.Action) error
}

// Listener receives host lifecycle and change notifications.
type Listener interface {
	// OnModified fires after the buffer of v changed.
	OnModified(v View)

	// OnSelectionModified fires after the selection of v changed.
	OnSelectionModified(v View)

	// OnDeactivated fires when the prompt of w loses focus without being
	// committed or cancelled.
	OnDeactivated(w Window)

	// OnViewClosed fires when a view closes.
	OnViewClosed(id ViewID)

	// OnWindowClosed fires when a window closes.
	OnWindowClosed(id WindowID)
}
