// Package input defines the typed commands that flow through the
// interception pipeline.
//
// Every user command reaches the core as an Action: a Command name plus
// typed arguments. Hosts build actions from key bindings (see the keymap
// package), from scripts, or from their own command palettes. The
// dispatcher may rewrite an action before the host executes it, most
// commonly by setting Args.Extend on a movement while the mark is active.
//
// # Commands
//
// Movement commands (Move, MoveTo) are the ones transient mark mode
// coerces into extending the selection. Structural edits (Indent,
// Unindent, SwapLineUp, SwapLineDown) keep the mark across the buffer
// modification they cause. Copy collapses the selection afterward.
//
// The remaining commands (SetMark, ClearSelection, ...) are the operations
// the core itself exposes for key bindings.
package input
