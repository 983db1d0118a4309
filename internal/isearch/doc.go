// Package isearch implements incremental search over a window's active view.
//
// A Session lives per window. Opening it shows a query prompt; every change
// to the query searches again from the current focus, and explicit repeats
// step to the next match in either direction, wrapping at the buffer ends.
// The session never writes the selection itself: it asks the view's MarkSel
// to select the match and then hides the live selection so that only the
// search highlights are drawn.
//
// Three highlights are maintained while a match is focused:
//
//	isearch.found   every match (outlined)
//	isearch.focus   the focused match
//	isearch.extra   the part of the selection outside the focused match,
//	                drawn only while the mark is active
//
// Commit, cancel and deactivation all end in the same cleanup: the
// selection is shown again, highlights and status are cleared, and a
// selection the search created without a mark collapses to its cursor.
package isearch
