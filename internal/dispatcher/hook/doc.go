// Package hook provides extensible dispatch and notification hooks for the
// dispatcher.
//
// Hooks are organized by priority to control execution order:
//
//   - PreDispatchHook: called once the final form of an action is known.
//     Can cancel the action.
//   - PostDispatchHook: called after dispatch, even when the handler failed.
//   - ModifiedHook: called when the host reports a buffer edit.
//   - SelectionHook: called when the host reports a selection change.
//
// Pre-hooks and notification hooks run highest priority first. Post-hooks
// run lowest first, so higher priority hooks see the final result.
//
// The Manager type handles hook registration and execution:
//
//	manager := hook.NewManager()
//	manager.RegisterPre(hook.NewCountLimitHook(1000))
//	manager.Register(hook.NewAuditHook(logger))
//
//	if manager.RunPreDispatch(&action, ctx) {
//	    // Dispatch action...
//	    manager.RunPostDispatch(&action, ctx, &result)
//	}
//
// Registering a hook with an existing name replaces it.
package hook
