package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key is the key pressed. KeyRune for characters.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Mod is the set of modifiers held.
	Mod Modifier
}

// NewRuneEvent creates a character key event. A space becomes KeySpace and
// Shift is dropped, since the rune already carries case.
func NewRuneEvent(r rune, mods Modifier) Event {
	if r == ' ' {
		return NewSpecialEvent(KeySpace, mods)
	}
	return Event{Key: KeyRune, Rune: r, Mod: mods.Without(ModShift)}
}

// NewSpecialEvent creates a special key event.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Mod: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// IsChar returns true if this event would insert a character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Mod.HasCtrl() && !e.Mod.HasMeta() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Control or Meta is held.
func (e Event) IsModified() bool {
	return e.Mod.HasCtrl() || e.Mod.HasMeta()
}

// String returns the emacs notation for the event, like "C-x" or "M-<up>".
func (e Event) String() string {
	if e.IsRune() {
		return e.Mod.String() + string(e.Rune)
	}
	return e.Mod.String() + e.Key.String()
}

// Equals returns true if both events describe the same key press.
func (e Event) Equals(other Event) bool {
	return e == other
}

// Matches reports whether the event matches a key specification.
func (e Event) Matches(spec string) bool {
	other, err := Parse(spec)
	return err == nil && e.Equals(other)
}

// IsEscape returns true for the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// IsEnter returns true for the Enter key.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter
}

// WithModifier returns a copy of the event with mod added.
func (e Event) WithModifier(mod Modifier) Event {
	e.Mod = e.Mod.With(mod)
	return e
}

// GoString returns a Go-syntax representation for debugging.
func (e Event) GoString() string {
	if e.IsRune() {
		return fmt.Sprintf("key.Event{Rune: %q, Mod: %q}", e.Rune, e.Mod.String())
	}
	return fmt.Sprintf("key.Event{Key: %s, Mod: %q}", e.Key, e.Mod.String())
}
