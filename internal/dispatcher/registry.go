package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/input"
)

// Registry maps command names to handlers. Several handlers may share a
// name; the highest priority one that accepts the command runs.
type Registry struct {
	mu       sync.RWMutex
	handlers map[input.Command][]handler.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[input.Command][]handler.Handler)}
}

// Register adds h under name.
func (r *Registry) Register(name input.Command, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := append(r.handlers[name], h)
	sort.SliceStable(hs, func(i, j int) bool {
		return hs[i].Priority() > hs[j].Priority()
	})
	r.handlers[name] = hs
}

// Unregister removes every handler registered under name.
func (r *Registry) Unregister(name input.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler that runs name, or nil when the command falls
// through to the host.
func (r *Registry) Get(name input.Command) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers[name] {
		if h.CanHandle(name) {
			return h
		}
	}
	return nil
}

// Has reports whether any handler is registered under name.
func (r *Registry) Has(name input.Command) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[name]) > 0
}
