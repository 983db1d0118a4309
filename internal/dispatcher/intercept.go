package dispatcher

import (
	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/input"
)

// Verdict is an interceptor's ruling on an action.
type Verdict uint8

const (
	// Pass lets the action through unchanged.
	Pass Verdict = iota
	// Rewrite replaces the action; every interceptor sees the new form.
	Rewrite
	// Consume swallows the action. No handler runs.
	Consume
)

// String returns a string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case Rewrite:
		return "rewrite"
	case Consume:
		return "consume"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one interception.
type Decision struct {
	Verdict Verdict

	// Action is the replacement for Rewrite.
	Action input.Action

	// Err is reported for Consume.
	Err error
}

// PassThrough lets the action through.
func PassThrough() Decision {
	return Decision{Verdict: Pass}
}

// RewriteTo replaces the action with a.
func RewriteTo(a input.Action) Decision {
	return Decision{Verdict: Rewrite, Action: a}
}

// Consumed swallows the action, optionally reporting err.
func Consumed(err error) Decision {
	return Decision{Verdict: Consume, Err: err}
}

// Interceptor inspects actions before any handler sees them.
type Interceptor interface {
	// Name returns a unique identifier for this interceptor.
	Name() string

	// Priority orders interceptors; higher runs first.
	Priority() int

	// Intercept rules on the action. It must be side-effect free when it
	// passes, since a rewrite makes every interceptor run again.
	Intercept(action input.Action, ctx *execctx.ExecutionContext) Decision
}

// InterceptorFunc wraps a function as an Interceptor.
type InterceptorFunc struct {
	name     string
	priority int
	fn       func(action input.Action, ctx *execctx.ExecutionContext) Decision
}

// NewInterceptorFunc creates a new InterceptorFunc.
func NewInterceptorFunc(name string, priority int, fn func(input.Action, *execctx.ExecutionContext) Decision) *InterceptorFunc {
	return &InterceptorFunc{name: name, priority: priority, fn: fn}
}

// Name implements Interceptor.
func (f *InterceptorFunc) Name() string { return f.name }

// Priority implements Interceptor.
func (f *InterceptorFunc) Priority() int { return f.priority }

// Intercept implements Interceptor.
func (f *InterceptorFunc) Intercept(action input.Action, ctx *execctx.ExecutionContext) Decision {
	if f.fn == nil {
		return PassThrough()
	}
	return f.fn(action, ctx)
}
