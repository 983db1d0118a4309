package keymap

import (
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/input/key"
)

// Status is the outcome of feeding one event to a Resolver.
type Status uint8

const (
	// StatusUnbound means the sequence matched nothing and was discarded.
	StatusUnbound Status = iota
	// StatusPending means more keys are needed.
	StatusPending
	// StatusMatched means an action is ready.
	StatusMatched
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUnbound:
		return "unbound"
	case StatusPending:
		return "pending"
	case StatusMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Resolver accumulates key events into sequences and resolves them
// against a Registry. It is not safe for concurrent use.
type Resolver struct {
	registry *Registry
	pending  *key.Sequence
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{
		registry: reg,
		pending:  key.NewSequence(),
	}
}

// Feed adds ev to the pending sequence. On StatusMatched the returned
// action is ready to dispatch and the pending sequence is reset.
// Unbound printable characters outside a prefix self-insert.
func (r *Resolver) Feed(ev key.Event) (input.Action, Status) {
	r.pending.Add(ev)

	pb, match := r.registry.Lookup(r.pending)
	switch match {
	case ExactMatch:
		r.pending.Clear()
		return pb.Resolved.WithSource(input.SourceKeyboard), StatusMatched
	case PrefixMatch:
		return input.Action{}, StatusPending
	}

	single := r.pending.Len() == 1
	r.pending.Clear()
	if single {
		if text, ok := selfInsert(ev); ok {
			return input.Insert(text).WithSource(input.SourceKeyboard), StatusMatched
		}
	}
	return input.Action{}, StatusUnbound
}

// Pending returns the keys typed so far, like "C-x".
func (r *Resolver) Pending() string {
	return r.pending.String()
}

// IsPending reports whether a prefix is waiting for more keys.
func (r *Resolver) IsPending() bool {
	return !r.pending.IsEmpty()
}

// Reset discards any pending prefix.
func (r *Resolver) Reset() {
	r.pending.Clear()
}

func selfInsert(ev key.Event) (string, bool) {
	switch {
	case ev.IsChar():
		return string(ev.Rune), true
	case ev.Key == key.KeySpace && ev.Mod.IsEmpty():
		return " ", true
	}
	return "", false
}
