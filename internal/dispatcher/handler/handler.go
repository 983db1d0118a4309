// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/input"
)

// Handler runs commands the dispatcher routes to it.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle reports whether the handler accepts the command. A
	// handler that refuses is skipped in favor of the next one.
	CanHandle(name input.Command) bool

	// Priority orders handlers sharing a command, higher first.
	Priority() int
}

// HandlerFunc adapts a function to Handler. It accepts every command it is
// registered under.
type HandlerFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// NewHandlerFunc wraps fn.
func NewHandlerFunc(fn func(action input.Action, ctx *execctx.ExecutionContext) Result) HandlerFunc {
	return HandlerFunc(fn)
}

// Handle calls f.
func (f HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// CanHandle always accepts.
func (f HandlerFunc) CanHandle(input.Command) bool { return true }

// Priority is zero.
func (f HandlerFunc) Priority() int { return 0 }

// SimpleHandler wraps a function with an explicit command name.
type SimpleHandler struct {
	// Command is the name of the command this handler processes.
	Command input.Command

	// Fn is the handler function.
	Fn func(action input.Action, ctx *execctx.ExecutionContext) Result

	// Prio is the handler priority.
	Prio int
}

// Handle implements Handler.Handle.
func (h *SimpleHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if h.Fn == nil {
		return Errorf("handler function is nil")
	}
	return h.Fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
func (h *SimpleHandler) CanHandle(name input.Command) bool {
	return name == h.Command
}

// Priority implements Handler.Priority.
func (h *SimpleHandler) Priority() int {
	return h.Prio
}

// FromError converts an operation's error into a result: nil becomes
// Success.
func FromError(err error) Result {
	if err != nil {
		return Error(err)
	}
	return Success()
}
