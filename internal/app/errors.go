package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownAction indicates a command name no action is registered for.
	ErrUnknownAction = errors.New("app: unknown action")

	// ErrNoWindow indicates an operation was issued without a window.
	ErrNoWindow = errors.New("app: no window")

	// ErrScriptsDisabled indicates RunScript was called on an App built
	// without a script state.
	ErrScriptsDisabled = errors.New("app: scripting not enabled")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "set_mark", "apply config")
	Target string // Window or view the operation ran against
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
