// Package dispatcher routes input actions to handlers and coordinates execution.
//
// The dispatcher is the single entry point for commands issued in a window.
// It owns three extension points:
//
//  1. Interceptors inspect every action before any handler. Each returns a
//     Decision: Pass, Rewrite (replace the action and run every interceptor
//     again on the new form) or Consume (swallow it). Rewrites are bounded by
//     Config.MaxRewrites, and an action rewritten back into a form it already
//     had fails with ErrRewriteLoop.
//
//  2. Handlers execute the final action. Core commands are registered by
//     name in the Registry; everything else goes to the host Executor.
//
//  3. Hooks (see package hook) observe dispatch and host notifications.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. Interceptors run until the action passes or is consumed
//  2. Pre-dispatch hooks are called with the final form (can cancel)
//  3. The handler or host executor runs (with optional panic recovery)
//  4. Post-dispatch hooks are called, even when the handler failed or a
//     pre-dispatch hook cancelled
//  5. Metrics are recorded (if enabled)
//
// A consumed action skips steps 2 to 4.
//
// # Panic Recovery
//
// With Config.RecoverFromPanic set, panics in interceptors, handlers and
// notification hooks are converted into errors wrapping ErrPanic. A panic
// value that is an error stays in the chain for errors.Is.
//
// # Example
//
//	d := dispatcher.NewWithDefaults()
//	d.SetExecutor(h)
//	d.RegisterHandlerFunc(input.CmdSetMark, func(a input.Action, ctx *execctx.ExecutionContext) handler.Result {
//	    marks.Get(ctx.View).PlaceMark(false)
//	    return handler.Success()
//	})
//	result := d.DispatchTo(w, false, input.NewAction(input.CmdSetMark))
package dispatcher
