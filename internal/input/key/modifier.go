package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModMeta indicates the Meta key. Terminals report it as Alt.
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the emacs prefix for the modifiers, like "C-M-".
func (m Modifier) String() string {
	var b strings.Builder
	if m.HasCtrl() {
		b.WriteString("C-")
	}
	if m.HasMeta() {
		b.WriteString("M-")
	}
	if m.HasShift() {
		b.WriteString("S-")
	}
	return b.String()
}

// modifierPrefixes maps the emacs prefix letter to a modifier.
var modifierPrefixes = map[byte]Modifier{
	'C': ModCtrl,
	'M': ModMeta,
	'S': ModShift,
}

// ModifierFromPrefix returns the modifier for an emacs prefix letter.
// Returns ModNone if the letter is not recognized.
func ModifierFromPrefix(c byte) Modifier {
	return modifierPrefixes[c]
}
