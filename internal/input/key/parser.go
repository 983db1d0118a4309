package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses an emacs key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "<", "%"
//   - Key names: "RET", "TAB", "SPC", "ESC", "DEL", "<up>", "<delete>"
//   - With modifiers: "C-s", "M-w", "C-M-f", "C-SPC", "M-<up>", "S-TAB"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	for len(spec) > 2 && spec[1] == '-' {
		mod := ModifierFromPrefix(spec[0])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		spec = spec[2:]
	}

	if r, size := utf8.DecodeRuneInString(spec); size == len(spec) && r != utf8.RuneError {
		if mods.HasShift() && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		return NewRuneEvent(r, mods), nil
	}

	if k := KeyFromName(spec); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// MustParse parses a key specification and panics on error.
// Use only for static, known-valid specifications.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// NormalizeSpec parses and re-formats a specification, so "C-space" and
// "C-SPC" compare equal.
func NormalizeSpec(spec string) (string, error) {
	e, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return e.String(), nil
}
