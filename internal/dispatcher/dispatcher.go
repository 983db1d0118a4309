package dispatcher

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/dispatcher/hook"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry     *Registry
	executor     host.Executor
	interceptors []Interceptor
	hookManager  *hook.Manager

	config  Config
	metrics *Metrics
	logger  *slog.Logger
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry:    NewRegistry(),
		hookManager: hook.NewManager(),
		config:      config,
		logger:      config.logger(),
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if config.MaxRepeatCount > 0 {
		d.hookManager.RegisterPre(hook.NewCountLimitHook(config.MaxRepeatCount))
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetExecutor sets the host executor used for commands no handler claims.
func (d *Dispatcher) SetExecutor(e host.Executor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.executor = e
}

// RegisterHandler registers a handler for a command.
func (d *Dispatcher) RegisterHandler(name input.Command, h handler.Handler) {
	d.registry.Register(name, h)
}

// RegisterHandlerFunc registers a handler function for a command.
func (d *Dispatcher) RegisterHandlerFunc(name input.Command, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// UnregisterHandler removes the handlers for a command.
func (d *Dispatcher) UnregisterHandler(name input.Command) {
	d.registry.Unregister(name)
}

// AddInterceptor adds an interceptor, replacing one with the same name.
func (d *Dispatcher) AddInterceptor(i Interceptor) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.interceptors = slices.DeleteFunc(d.interceptors, func(existing Interceptor) bool {
		return existing.Name() == i.Name()
	})
	d.interceptors = append(d.interceptors, i)
	sort.SliceStable(d.interceptors, func(a, b int) bool {
		return d.interceptors[a].Priority() > d.interceptors[b].Priority()
	})
}

// RemoveInterceptor removes an interceptor by name.
func (d *Dispatcher) RemoveInterceptor(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.interceptors)
	d.interceptors = slices.DeleteFunc(d.interceptors, func(i Interceptor) bool {
		return i.Name() == name
	})
	return len(d.interceptors) != n
}

// Dispatch executes an action in the given context.
func (d *Dispatcher) Dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	startTime := time.Now()

	result, final := d.dispatchInternal(action, ctx)

	if d.metrics != nil {
		d.metrics.RecordRewrites(ctx.Rewrites)
		d.metrics.RecordDispatch(final.Name, time.Since(startTime), result.Status)
	}
	return result
}

// DispatchTo executes an action against the active view of w.
func (d *Dispatcher) DispatchTo(w host.Window, inPrompt bool, action input.Action) handler.Result {
	return d.Dispatch(action, execctx.New(w, inPrompt))
}

// dispatchInternal is the core dispatch logic. It returns the result and the
// final form of the action.
func (d *Dispatcher) dispatchInternal(action input.Action, ctx *execctx.ExecutionContext) (handler.Result, input.Action) {
	if action.Name == "" {
		return handler.Errorf("%w: empty command", ErrInvalidAction), action
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err), action
	}
	if action.Count > 0 {
		ctx.Count = action.Count
	}

	action, verdict := d.intercept(action, ctx)
	if verdict != nil {
		return *verdict, action
	}

	var result handler.Result
	if d.hookManager.RunPreDispatch(&action, ctx) {
		result = d.execute(action, ctx)
	} else {
		result = handler.CancelledWithMessage("cancelled by hook")
	}

	// Post hooks settle per-command state, so they run whatever happened.
	d.hookManager.RunPostDispatch(&action, ctx, &result)

	if result.IsError() {
		d.logger.Debug("dispatch failed", "action", action.Name.String(), "error", result.Error)
	}
	return result, action
}

// intercept runs the interceptors until the action passes or is consumed.
// A non-nil result ends the dispatch.
func (d *Dispatcher) intercept(action input.Action, ctx *execctx.ExecutionContext) (input.Action, *handler.Result) {
	d.mu.RLock()
	interceptors := slices.Clone(d.interceptors)
	d.mu.RUnlock()

	limit := d.config.MaxRewrites
	if limit <= 0 {
		limit = DefaultMaxRewrites
	}

	seen := map[string]struct{}{action.Key(): {}}
	for {
		dec := d.decide(interceptors, action, ctx)
		switch dec.Verdict {
		case Consume:
			r := handler.Consumed(dec.Err)
			return action, &r
		case Rewrite:
			ctx.Rewrites++
			if ctx.Rewrites > limit {
				r := handler.Errorf("%w: %s after %d rewrites", ErrRewriteLimit, action.Name, limit)
				return action, &r
			}
			key := dec.Action.Key()
			if _, dup := seen[key]; dup {
				r := handler.Errorf("%w: %s", ErrRewriteLoop, key)
				return action, &r
			}
			seen[key] = struct{}{}
			d.logger.Debug("action rewritten", "from", action.Key(), "to", key)
			action = dec.Action
		default:
			return action, nil
		}
	}
}

// decide asks each interceptor in turn; the first that does not pass wins.
func (d *Dispatcher) decide(interceptors []Interceptor, action input.Action, ctx *execctx.ExecutionContext) (dec Decision) {
	if d.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				dec = Consumed(d.recovered("interceptor", action, r))
			}
		}()
	}

	for _, i := range interceptors {
		if dec := i.Intercept(action, ctx); dec.Verdict != Pass {
			return dec
		}
	}
	return PassThrough()
}

// execute runs the handler for the action, falling back to the host.
func (d *Dispatcher) execute(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	h := d.registry.Get(action.Name)
	if h == nil {
		d.mu.RLock()
		exec := d.executor
		d.mu.RUnlock()
		if exec == nil {
			return handler.Errorf("%w: %s", ErrNoHandler, action.Name)
		}
		h = executorHandler{exec}
	}

	if d.config.RecoverFromPanic {
		return d.executeWithRecovery(h, action, ctx)
	}
	return h.Handle(action, ctx)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = handler.Error(d.recovered("handler", action, r))
		}
	}()

	return h.Handle(action, ctx)
}

func (d *Dispatcher) recovered(where string, action input.Action, r any) error {
	stack := make([]byte, 4096)
	n := runtime.Stack(stack, false)

	d.logger.Error("recovered panic", "in", where, "action", action.Name.String(), "panic", r)
	if d.metrics != nil {
		d.metrics.RecordPanic()
	}

	if err, ok := r.(error); ok {
		return fmt.Errorf("%w in %s for %s: %w\n%s", ErrPanic, where, action.Name, err, stack[:n])
	}
	return fmt.Errorf("%w in %s for %s: %v\n%s", ErrPanic, where, action.Name, r, stack[:n])
}

// NotifyModified runs the modification hooks for v.
func (d *Dispatcher) NotifyModified(v host.View) error {
	return d.notify("modified", func() { d.hookManager.RunModified(v) })
}

// NotifySelectionModified runs the selection hooks for v.
func (d *Dispatcher) NotifySelectionModified(v host.View) error {
	return d.notify("selection", func() { d.hookManager.RunSelectionModified(v) })
}

func (d *Dispatcher) notify(kind string, fn func()) (err error) {
	if d.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				err = d.recovered(kind+" notification", input.Action{Name: input.Command(kind)}, r)
			}
		}()
	}
	fn()
	return nil
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// HookManager returns the hook manager.
func (d *Dispatcher) HookManager() *hook.Manager {
	return d.hookManager
}

// executorHandler adapts a host executor to the Handler interface.
type executorHandler struct {
	exec host.Executor
}

func (h executorHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForView(); err != nil {
		return handler.Error(err)
	}
	return handler.FromError(h.exec.Execute(ctx.Window, ctx.View, ctx.InPrompt, action))
}

func (h executorHandler) CanHandle(input.Command) bool { return true }

func (h executorHandler) Priority() int { return 0 }
