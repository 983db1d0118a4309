package keymap

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/marksearch/internal/input/key"
)

// Errors returned while validating or parsing keymaps.
var (
	ErrEmptyKeys      = errors.New("empty keys")
	ErrUnknownAction  = errors.New("unknown action")
	ErrPrefixConflict = errors.New("binding shadows a longer sequence")
)

// Unbind is the override value that removes a binding.
const Unbind = "unbound"

// Keymap holds an ordered list of key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings. A later binding for the
	// same keys replaces an earlier one.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps match.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "config", "lua"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Remove deletes every binding for keys. Keys are compared after
// normalization, so "C-x  C-x" removes "C-x C-x".
func (k *Keymap) Remove(keys string) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return
	}
	k.Bindings = slices.DeleteFunc(k.Bindings, func(b Binding) bool {
		other, err := key.ParseSequence(b.Keys)
		return err == nil && other.Equals(seq)
	})
}

// Override binds keys to action, replacing any binding for the same
// sequence. An action of Unbind removes the binding.
func (k *Keymap) Override(keys, action string) error {
	if _, err := key.ParseSequence(keys); err != nil {
		return fmt.Errorf("override %q: %w", keys, err)
	}
	if action != Unbind {
		if _, ok := ActionByName(action); !ok {
			return fmt.Errorf("override %q: %w: %q", keys, ErrUnknownAction, action)
		}
	}
	k.Remove(keys)
	if action != Unbind {
		k.Add(keys, action)
	}
	return nil
}

// ApplyOverrides applies a keys-to-action table in sorted key order.
func (k *Keymap) ApplyOverrides(overrides map[string]string) error {
	var errs []error
	for _, keys := range slices.Sorted(maps.Keys(overrides)) {
		if err := k.Override(keys, overrides[keys]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed key sequences.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap. Later bindings for the same
// sequence win. A sequence that is both bound and a prefix of another
// binding is a conflict.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: %w", i, ErrEmptyKeys)
		}
		action, ok := ActionByName(b.Action)
		if !ok {
			return nil, fmt.Errorf("binding %d (%s): %w: %q", i, b.Keys, ErrUnknownAction, b.Action)
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		pb := ParsedBinding{Binding: b, Sequence: seq, Resolved: action}
		if j := slices.IndexFunc(parsed.ParsedBindings, func(p ParsedBinding) bool { return p.Match(seq) }); j >= 0 {
			parsed.ParsedBindings[j] = pb
			continue
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, pb)
	}

	for i := range parsed.ParsedBindings {
		for j := range parsed.ParsedBindings {
			a, b := &parsed.ParsedBindings[i], &parsed.ParsedBindings[j]
			if b.IsPrefix(a.Sequence) {
				return nil, fmt.Errorf("%s (%s): %w %s", a.Keys, a.Action, ErrPrefixConflict, b.Keys)
			}
		}
	}

	return parsed, nil
}

// Lookup finds the binding for seq. It returns the exact match if one
// exists, and reports whether seq is a prefix of some longer binding.
func (pk *ParsedKeymap) Lookup(seq *key.Sequence) (exact *ParsedBinding, prefix bool) {
	for i := range pk.ParsedBindings {
		pb := &pk.ParsedBindings[i]
		if pb.Match(seq) {
			exact = pb
		} else if pb.IsPrefix(seq) {
			prefix = true
		}
	}
	return exact, prefix
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	return &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: slices.Clone(k.Bindings),
	}
}
