package keymap

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/marksearch/internal/input/key"
)

// Match describes how a key sequence relates to the registered bindings.
type Match uint8

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch Match = iota
	// PrefixMatch means the sequence is the start of a longer binding.
	PrefixMatch
	// ExactMatch means the sequence is bound.
	ExactMatch
)

// String returns a string representation of the match.
func (m Match) String() string {
	switch m {
	case NoMatch:
		return "none"
	case PrefixMatch:
		return "prefix"
	case ExactMatch:
		return "exact"
	default:
		return "unknown"
	}
}

// Registry layers keymaps by priority and resolves sequences against them.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// ordered is the lookup order, highest priority first.
	ordered []*ParsedKeymap
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keymaps[km.Name] = parsed
	r.reorderLocked()
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	r.reorderLocked()
}

// reorderLocked rebuilds the lookup order. Caller must hold the write lock.
func (r *Registry) reorderLocked() {
	r.ordered = r.ordered[:0]
	for _, pk := range r.keymaps {
		r.ordered = append(r.ordered, pk)
	}
	slices.SortFunc(r.ordered, func(a, b *ParsedKeymap) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Names returns the registered keymap names in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.ordered))
	for i, pk := range r.ordered {
		names[i] = pk.Name
	}
	return names
}

// Lookup resolves seq. The highest-priority keymap that either binds
// seq or has a longer binding starting with it decides the result.
func (r *Registry) Lookup(seq *key.Sequence) (*ParsedBinding, Match) {
	if seq == nil || seq.IsEmpty() {
		return nil, NoMatch
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, pk := range r.ordered {
		exact, prefix := pk.Lookup(seq)
		switch {
		case exact != nil:
			return exact, ExactMatch
		case prefix:
			return nil, PrefixMatch
		}
	}
	return nil, NoMatch
}

// Bindings returns every effective binding in lookup order. Bindings
// shadowed by a higher-priority keymap are omitted.
func (r *Registry) Bindings() []ParsedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ParsedBinding
	seen := make(map[string]bool)
	for _, pk := range r.ordered {
		for _, pb := range pk.ParsedBindings {
			k := pb.Sequence.String()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, pb)
		}
	}
	return out
}
