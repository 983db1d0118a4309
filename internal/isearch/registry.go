package isearch

import (
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/marksel"
)

// guard serializes session cleanups. A cleanup requested while another one
// runs is queued and run once the first finishes.
type guard struct {
	busy    bool
	pending []func()
}

func (g *guard) run(fn func()) {
	if g.busy {
		g.pending = append(g.pending, fn)
		return
	}
	g.busy = true
	defer func() { g.busy = false }()
	fn()
	for len(g.pending) > 0 {
		next := g.pending[0]
		g.pending = g.pending[1:]
		next()
	}
}

// Registry holds one Session per live window.
type Registry struct {
	marks   *marksel.Registry
	replay  Replayer
	opts    Options
	guard   guard
	windows map[host.WindowID]*Session
}

// NewRegistry creates an empty registry. Sessions select through marks and
// replay prompt movement through replay.
func NewRegistry(marks *marksel.Registry, replay Replayer, opts Options) *Registry {
	return &Registry{
		marks:   marks,
		replay:  replay,
		opts:    opts,
		windows: make(map[host.WindowID]*Session),
	}
}

// Get returns the session of w, creating it on first use.
func (r *Registry) Get(w host.Window) *Session {
	if s, ok := r.windows[w.ID()]; ok {
		return s
	}
	s := newSession(w, r.marks, r.replay, &r.guard, r.opts)
	r.windows[w.ID()] = s
	return s
}

// Lookup returns the session of a window without creating it.
func (r *Registry) Lookup(id host.WindowID) (*Session, bool) {
	s, ok := r.windows[id]
	return s, ok
}

// Remove closes and forgets the session of a closed window.
func (r *Registry) Remove(id host.WindowID) {
	if s, ok := r.windows[id]; ok {
		s.Close()
		delete(r.windows, id)
	}
}

// OnViewClosed closes every session searching the view id.
func (r *Registry) OnViewClosed(id host.ViewID) {
	for _, s := range r.windows {
		if v := s.View(); v != nil && v.ID() == id {
			s.Close()
		}
	}
}

// OnSelectionModified forwards a selection change of v to every session.
func (r *Registry) OnSelectionModified(v host.View) {
	for _, s := range r.windows {
		s.OnSelectionModified(v)
	}
}

// Len returns the number of tracked windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// SetOptions applies opts to existing and future sessions.
func (r *Registry) SetOptions(opts Options) {
	r.opts = opts
	for _, s := range r.windows {
		s.opts = opts
	}
}
