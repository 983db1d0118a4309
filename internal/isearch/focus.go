package isearch

import (
	"fmt"

	"github.com/dshills/marksearch/internal/engine/cursor"
)

// FocusState says how the focused match was reached.
type FocusState uint8

const (
	// FocusNil means there is no query or no match.
	FocusNil FocusState = iota
	// FocusPassive means the match was found by typing.
	FocusPassive
	// FocusActive means the user stepped to the match explicitly.
	FocusActive
)

// String returns the state name.
func (s FocusState) String() string {
	switch s {
	case FocusNil:
		return "nil"
	case FocusPassive:
		return "passive"
	case FocusActive:
		return "active"
	default:
		return "unknown"
	}
}

// Focus is the match a session is locked on.
type Focus struct {
	State FocusState
	Span  cursor.Span
}

// HasSpan reports whether the focus holds a match.
func (f Focus) HasSpan() bool {
	return f.State != FocusNil
}

func (f Focus) String() string {
	if f.State == FocusNil {
		return "Focus(nil)"
	}
	return fmt.Sprintf("Focus(%s %v)", f.State, f.Span)
}

// State is the lifecycle state of a session.
type State uint8

const (
	// StateClosed means no prompt is showing.
	StateClosed State = iota
	// StateOpen means the prompt is showing with an empty query.
	StateOpen
	// StateSearching means the prompt holds a query.
	StateSearching
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateSearching:
		return "searching"
	default:
		return "unknown"
	}
}
