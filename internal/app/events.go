package app

import (
	"github.com/dshills/marksearch/internal/host"
)

// OnModified relays a buffer edit to the mark state of v.
func (a *App) OnModified(v host.View) {
	if err := a.dispatcher.NotifyModified(v); err != nil {
		a.events.Error("modification hook failed", "view", string(v.ID()), "error", err)
	}
}

// OnSelectionModified relays a selection change to the mark state of v and
// closes any search whose selection split.
func (a *App) OnSelectionModified(v host.View) {
	if err := a.dispatcher.NotifySelectionModified(v); err != nil {
		a.events.Error("selection hook failed", "view", string(v.ID()), "error", err)
	}
	a.searches.OnSelectionModified(v)
}

// OnDeactivated closes the search of w when its prompt loses focus.
func (a *App) OnDeactivated(w host.Window) {
	s, ok := a.searches.Lookup(w.ID())
	if !ok || !s.IsOpen() {
		return
	}
	a.events.Debug("prompt deactivated", "window", string(w.ID()))
	s.OnDeactivated()
}

// OnViewClosed closes any search of a closed view, then forgets its mark
// state and ring.
func (a *App) OnViewClosed(id host.ViewID) {
	a.searches.OnViewClosed(id)
	if _, ok := a.marks.Lookup(id); !ok {
		return
	}
	a.marks.Remove(id)
	a.events.Debug("view closed", "view", string(id))
}

// OnWindowClosed closes and forgets the search session of a closed window.
func (a *App) OnWindowClosed(id host.WindowID) {
	if _, ok := a.searches.Lookup(id); !ok {
		return
	}
	a.searches.Remove(id)
	a.resolver.Reset()
	a.events.Debug("window closed", "window", string(id))
}

var _ host.Listener = (*App)(nil)
