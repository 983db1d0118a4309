package keymap

import (
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/input/key"
)

// Binding maps a key sequence in emacs notation, like "C-x C-x" or
// "M-<up>", to an action name understood by ActionByName.
type Binding struct {
	Keys        string
	Action      string
	Description string
	Category    string // one of the Category constants, for help listings
}

// NewBinding creates an undocumented binding.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// ParsedBinding is a binding with a pre-parsed key sequence and its
// resolved action.
type ParsedBinding struct {
	Binding
	Sequence *key.Sequence
	Resolved input.Action
}

// Match reports whether seq is exactly this binding's sequence.
func (pb *ParsedBinding) Match(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Equals(seq)
}

// IsPrefix reports whether seq is a strict prefix, so the resolver should
// wait for more keys.
func (pb *ParsedBinding) IsPrefix(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Len() > seq.Len() && pb.Sequence.HasPrefix(seq)
}

// Binding categories.
const (
	CategoryMark     = "mark"
	CategorySearch   = "search"
	CategoryMovement = "movement"
	CategoryEditing  = "editing"
)
