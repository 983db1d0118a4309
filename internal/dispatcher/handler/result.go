package handler

import (
	"fmt"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates a hook cancelled the action.
	StatusCancelled
	// StatusConsumed indicates an interceptor swallowed the action.
	StatusConsumed
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	case StatusConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatched command.
type Result struct {
	Status ResultStatus

	// Error is set for StatusError.
	Error error

	// Message is an optional note for the status line, like "mark ring
	// empty".
	Message string
}

// IsOK reports whether the command ran.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError reports whether the command failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Err returns the result's error, or nil unless the status is StatusError.
func (r Result) Err() error {
	if r.Status != StatusError {
		return nil
	}
	return r.Error
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a result for a command that changed nothing.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-op result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// CancelledWithMessage creates a result for a command a pre-dispatch hook
// stopped.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Consumed creates a result for an action an interceptor swallowed. A
// non-nil err turns it into an error result.
func Consumed(err error) Result {
	if err != nil {
		return Error(err)
	}
	return Result{Status: StatusConsumed}
}

// WithMessage returns a copy of r carrying msg.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
