package marksel

import (
	"github.com/dshills/marksearch/internal/host"
)

// Registry holds one MarkSel per live view.
type Registry struct {
	opts  Options
	views map[host.ViewID]*MarkSel
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, views: make(map[host.ViewID]*MarkSel)}
}

// Get returns the state of v, creating it on first use.
func (r *Registry) Get(v host.View) *MarkSel {
	if m, ok := r.views[v.ID()]; ok {
		return m
	}
	m := New(v, r.opts)
	r.views[v.ID()] = m
	return m
}

// Lookup returns the state of a view without creating it.
func (r *Registry) Lookup(id host.ViewID) (*MarkSel, bool) {
	m, ok := r.views[id]
	return m, ok
}

// Remove forgets a closed view.
func (r *Registry) Remove(id host.ViewID) {
	delete(r.views, id)
}

// Len returns the number of tracked views.
func (r *Registry) Len() int {
	return len(r.views)
}

// SetOptions applies opts to existing and future instances.
func (r *Registry) SetOptions(opts Options) {
	r.opts = opts
	for _, m := range r.views {
		m.SetPolicy(opts.Policy)
		m.ring.Resize(opts.RingSize)
	}
}
