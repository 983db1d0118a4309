package app

import (
	"fmt"

	"github.com/dshills/marksearch/internal/dispatcher"
	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/input/keymap"
	"github.com/dshills/marksearch/internal/marksel"
	"github.com/dshills/marksearch/internal/search"
)

// SetMark places the mark at the cursor of the active view of w, or clears
// it when it is already there.
func (a *App) SetMark(w host.Window) error {
	return a.run(w, input.NewAction(input.CmdSetMark))
}

// ClearSelection collapses the selection to the cursor and clears the mark.
func (a *App) ClearSelection(w host.Window) error {
	return a.run(w, input.NewAction(input.CmdClearSelection))
}

// ReverseSelection swaps the ends of the primary span.
func (a *App) ReverseSelection(w host.Window) error {
	return a.run(w, input.NewAction(input.CmdReverseSelection))
}

// ExpandSelectionToLines grows the primary span over full lines.
func (a *App) ExpandSelectionToLines(w host.Window) error {
	return a.run(w, input.NewAction(input.CmdExpandSelectionToLines))
}

// StartIncrementalSearch opens a search of the active view of w, or takes
// focus back to the prompt of an open one.
func (a *App) StartIncrementalSearch(w host.Window, dir search.Direction) error {
	return a.run(w, searchAction(input.CmdIncrementalSearch, dir))
}

// RepeatIncrementalSearch steps to the next match in dir, opening a search
// when none is open.
func (a *App) RepeatIncrementalSearch(w host.Window, dir search.Direction) error {
	return a.run(w, searchAction(input.CmdIncrementalSearchAgain, dir))
}

// CycleMarkPrev jumps to the previous mark ring entry. It reports whether
// the cursor moved.
func (a *App) CycleMarkPrev(w host.Window) (bool, error) {
	return a.jump(w, input.CmdCycleMarkPrev)
}

// CycleMarkNext jumps to the next mark ring entry.
func (a *App) CycleMarkNext(w host.Window) (bool, error) {
	return a.jump(w, input.CmdCycleMarkNext)
}

// RunCommand runs the action registered under name against the active view
// of w.
func (a *App) RunCommand(w host.Window, name string) error {
	act, ok := keymap.ActionByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return a.run(w, act)
}

// Dispatch runs action in w through interception, hooks and the host. Set
// inPrompt when keyboard focus is in the window's prompt.
func (a *App) Dispatch(w host.Window, inPrompt bool, action input.Action) handler.Result {
	return a.dispatcher.DispatchTo(w, inPrompt, action)
}

func (a *App) run(w host.Window, action input.Action) error {
	_, err := a.runResult(w, action)
	return err
}

func (a *App) runResult(w host.Window, action input.Action) (handler.Result, error) {
	if w == nil {
		return handler.Result{}, ErrNoWindow
	}
	r := a.Dispatch(w, false, action)
	if err := r.Err(); err != nil {
		return r, NewOperationError(action.Name.String(), string(w.ID()), err)
	}
	return r, nil
}

func (a *App) jump(w host.Window, cmd input.Command) (bool, error) {
	r, err := a.runResult(w, input.NewAction(cmd))
	return err == nil && r.IsOK(), err
}

func searchAction(cmd input.Command, dir search.Direction) input.Action {
	return input.Action{Name: cmd, Args: input.ActionArgs{Forward: dir.IsForward()}}
}

func (a *App) registerCommands(d *dispatcher.Dispatcher) {
	d.RegisterHandlerFunc(input.CmdSetMark, a.onView(func(ms *marksel.MarkSel, _ input.Action) handler.Result {
		ms.PlaceMark(false)
		return handler.Success()
	}))
	d.RegisterHandlerFunc(input.CmdClearSelection, a.clearSelection)
	d.RegisterHandlerFunc(input.CmdReverseSelection, a.onView(func(ms *marksel.MarkSel, _ input.Action) handler.Result {
		ms.ReverseSelection()
		return handler.Success()
	}))
	d.RegisterHandlerFunc(input.CmdExpandSelectionToLines, a.onView(func(ms *marksel.MarkSel, _ input.Action) handler.Result {
		ms.ExpandToLines()
		return handler.Success()
	}))
	d.RegisterHandlerFunc(input.CmdCycleMarkPrev, a.onView(func(ms *marksel.MarkSel, act input.Action) handler.Result {
		return cycle(ms.CycleMarkPrev, act.Times())
	}))
	d.RegisterHandlerFunc(input.CmdCycleMarkNext, a.onView(func(ms *marksel.MarkSel, act input.Action) handler.Result {
		return cycle(ms.CycleMarkNext, act.Times())
	}))
	d.RegisterHandlerFunc(input.CmdIncrementalSearch, a.startSearch)
	d.RegisterHandlerFunc(input.CmdIncrementalSearchAgain, a.repeatSearch)
}

// onView adapts a mark command to a handler running against the target
// view.
func (a *App) onView(fn func(*marksel.MarkSel, input.Action) handler.Result) func(input.Action, *execctx.ExecutionContext) handler.Result {
	return func(act input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if err := ctx.ValidateForView(); err != nil {
			return handler.Error(err)
		}
		return fn(a.marks.Get(ctx.View), act)
	}
}

func cycle(step func() bool, times int) handler.Result {
	moved := false
	for range times {
		if !step() {
			break
		}
		moved = true
	}
	if !moved {
		return handler.NoOpWithMessage("mark ring empty")
	}
	return handler.Success()
}

// clearSelection cancels the prompt when typed into it.
func (a *App) clearSelection(act input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.InPrompt {
		ctx.Window.HidePrompt()
		return handler.Success()
	}
	return a.onView(func(ms *marksel.MarkSel, _ input.Action) handler.Result {
		ms.ClearAll()
		return handler.Success()
	})(act, ctx)
}

func (a *App) startSearch(act input.Action, ctx *execctx.ExecutionContext) handler.Result {
	s := a.searches.Get(ctx.Window)
	return handler.FromError(s.Open(search.DirectionOf(act.Args.Forward)))
}

func (a *App) repeatSearch(act input.Action, ctx *execctx.ExecutionContext) handler.Result {
	s := a.searches.Get(ctx.Window)
	dir := search.DirectionOf(act.Args.Forward)
	if !s.IsOpen() {
		return handler.FromError(s.Open(dir))
	}
	return handler.FromError(s.Repeat(dir))
}

// interceptPrompt hands commands typed into the prompt to the window's
// search session, which consumes the movement it replays.
func (a *App) interceptPrompt(act input.Action, ctx *execctx.ExecutionContext) dispatcher.Decision {
	if !ctx.InPrompt {
		return dispatcher.PassThrough()
	}
	s, ok := a.searches.Lookup(ctx.Window.ID())
	if !ok {
		return dispatcher.PassThrough()
	}
	consumed, err := s.InterceptPromptCommand(act)
	if !consumed {
		return dispatcher.PassThrough()
	}
	return dispatcher.Consumed(err)
}

// interceptMovement coerces movement to extend while the mark is active.
func (a *App) interceptMovement(act input.Action, ctx *execctx.ExecutionContext) dispatcher.Decision {
	ms := a.target(ctx)
	if ms == nil {
		return dispatcher.PassThrough()
	}
	if next, ok := ms.InterceptCommand(act); ok {
		return dispatcher.RewriteTo(next)
	}
	return dispatcher.PassThrough()
}

func (a *App) beforeCommand(act *input.Action, ctx *execctx.ExecutionContext) bool {
	if ms := a.target(ctx); ms != nil {
		ms.BeforeCommand(*act)
	}
	return true
}

func (a *App) afterCommand(act *input.Action, ctx *execctx.ExecutionContext, _ *handler.Result) {
	if ms := a.target(ctx); ms != nil {
		ms.AfterCommand(*act)
	}
}

// target returns the mark state a view command runs against, or nil for
// commands typed into a prompt.
func (a *App) target(ctx *execctx.ExecutionContext) *marksel.MarkSel {
	if ctx.InPrompt || ctx.View == nil {
		return nil
	}
	return a.marks.Get(ctx.View)
}

// replay runs a command the search session closed its prompt for.
func (a *App) replay(w host.Window, act input.Action) error {
	return a.dispatcher.DispatchTo(w, false, act).Err()
}
