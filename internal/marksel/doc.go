// Package marksel implements transient mark mode for a single view.
//
// A MarkSel owns the mark of one view: an anchor offset that, while active,
// turns ordinary cursor movement into selection growth. It decides every
// selection mutation the core makes for its view and reacts to host
// notifications:
//
//   - InterceptCommand rewrites movement to extend while the mark is active.
//   - BeforeCommand arms the keep-mark counters for structural edits.
//   - OnModified drops the mark after an arbitrary edit, or re-anchors it
//     after a structural one.
//   - OnSelectionModified stretches the selection back over the mark when
//     something else moved the cursor.
//   - AfterCommand collapses the selection after copy-like commands.
//
// Mutating a view whose selection is empty, and not hidden by HideSelection,
// is a host contract violation. Such calls panic with an *InvariantError.
package marksel
