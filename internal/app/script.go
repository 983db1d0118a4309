package app

import (
	"context"

	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/marksel"
)

// RunScript runs Lua code acting on w. Commands a script issues run against
// the active view of w, like keyboard commands outside the prompt.
func (a *App) RunScript(ctx context.Context, w host.Window, code string) error {
	if a.scripts == nil {
		return ErrScriptsDisabled
	}
	if w == nil {
		return ErrNoWindow
	}
	prev := a.scriptWindow
	a.scriptWindow = w
	defer func() { a.scriptWindow = prev }()

	if err := a.scripts.DoString(ctx, code); err != nil {
		return NewOperationError("script", string(w.ID()), err)
	}
	return nil
}

// scriptTarget is the editor state seen by scripts.
type scriptTarget struct {
	app *App
}

func (t scriptTarget) Run(act input.Action) error {
	return t.app.run(t.app.scriptWindow, act)
}

func (t scriptTarget) Mark() (int, bool) {
	ms := t.marks()
	if ms == nil {
		return 0, false
	}
	return ms.Mark()
}

func (t scriptTarget) MarkActive() bool {
	ms := t.marks()
	return ms != nil && ms.IsMarkActive()
}

func (t scriptTarget) Bind(keys, action string) error {
	return t.app.BindKey(keys, action)
}

func (t scriptTarget) marks() *marksel.MarkSel {
	w := t.app.scriptWindow
	if w == nil {
		return nil
	}
	v := w.ActiveView()
	if v == nil {
		return nil
	}
	return t.app.marks.Get(v)
}
