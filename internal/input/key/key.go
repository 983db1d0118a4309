package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

// keyNames holds the canonical emacs name of each special key. Keys written
// in angle brackets are marked.
var keyNames = map[Key]struct {
	name      string
	bracketed bool
}{
	KeyEscape:    {"ESC", false},
	KeyEnter:     {"RET", false},
	KeyTab:       {"TAB", false},
	KeyBacktab:   {"backtab", true},
	KeyBackspace: {"DEL", false},
	KeyDelete:    {"delete", true},
	KeySpace:     {"SPC", false},
	KeyHome:      {"home", true},
	KeyEnd:       {"end", true},
	KeyPageUp:    {"prior", true},
	KeyPageDown:  {"next", true},
	KeyUp:        {"up", true},
	KeyDown:      {"down", true},
	KeyLeft:      {"left", true},
	KeyRight:     {"right", true},
}

// String returns the emacs name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	}
	if n, ok := keyNames[k]; ok {
		if n.bracketed {
			return "<" + n.name + ">"
		}
		return n.name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// keyNameMap maps key names (lowercase, without brackets) to Key values.
var keyNameMap = map[string]Key{
	"esc":        KeyEscape,
	"escape":     KeyEscape,
	"ret":        KeyEnter,
	"return":     KeyEnter,
	"enter":      KeyEnter,
	"tab":        KeyTab,
	"backtab":    KeyBacktab,
	"del":        KeyBackspace,
	"backspace":  KeyBackspace,
	"delete":     KeyDelete,
	"deletechar": KeyDelete,
	"spc":        KeySpace,
	"space":      KeySpace,
	"home":       KeyHome,
	"end":        KeyEnd,
	"prior":      KeyPageUp,
	"pageup":     KeyPageUp,
	"next":       KeyPageDown,
	"pagedown":   KeyPageDown,
	"up":         KeyUp,
	"down":       KeyDown,
	"left":       KeyLeft,
	"right":      KeyRight,
}

// KeyFromName returns the Key for a given name (case-insensitive, with or
// without angle brackets).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
