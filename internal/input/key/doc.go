// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a special key, or KeyRune for characters
//   - Modifier: Control, Meta and Shift
//   - Event: A single key press with modifiers
//   - Sequence: A series of events forming a command, such as "C-x C-x"
//
// # Key Specifications
//
// Specifications use emacs notation: modifier prefixes "C-", "M-" and "S-"
// followed by a character or a key name, for example "a", "C-s", "M-w",
// "C-SPC", "RET" or "M-<up>". Sequences separate events with spaces.
//
// FromTcell converts terminal key events into the same model.
package key
