// Package execctx carries the per-dispatch context handed to interceptors,
// handlers and hooks.
package execctx

import (
	"github.com/dshills/marksearch/internal/host"
)

// ExecutionContext identifies where an action runs.
type ExecutionContext struct {
	// Window is the window the action was issued in.
	Window host.Window

	// View is the view the action targets. For actions typed into a prompt
	// it is the window's active view, not the prompt.
	View host.View

	// InPrompt reports whether keyboard focus was in the window's prompt.
	InPrompt bool

	// Count is the repeat count (1 if not specified).
	Count int

	// Rewrites is the number of times the action was rewritten before it
	// reached a handler.
	Rewrites int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context for a window.
func New(w host.Window, inPrompt bool) *ExecutionContext {
	ctx := &ExecutionContext{
		Window:   w,
		InPrompt: inPrompt,
		Count:    1,
		Data:     make(map[string]any),
	}
	if w != nil {
		ctx.View = w.ActiveView()
	}
	return ctx
}

// WithView returns the context targeting v instead of the active view.
func (ctx *ExecutionContext) WithView(v host.View) *ExecutionContext {
	ctx.View = v
	return ctx
}

// WithCount returns the context with the count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataBool retrieves a bool value from context data.
func (ctx *ExecutionContext) GetDataBool(key string) bool {
	if v, ok := ctx.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Validate checks that the context names a window.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Window == nil {
		return ErrMissingWindow
	}
	return nil
}

// ValidateForView checks that the context has a target view.
func (ctx *ExecutionContext) ValidateForView() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.View == nil {
		return ErrMissingView
	}
	return nil
}
