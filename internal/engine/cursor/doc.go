// Package cursor provides spans, selections and region arithmetic.
//
// The cursor package handles:
//
//   - Directed spans with the anchor/head model via Span
//   - Ordered, disjoint multi-span selections via Selection
//   - Region arithmetic: reverse, cover, extend and subtract
//   - Span transformation after buffer edits
//
// Span Model:
//
// Spans use an anchor/head model where:
//   - Anchor: The fixed end of the span
//   - Head: The moving end, where the cursor visually rests
//
// Spans are not normalized. When Anchor > Head the span is reversed and the
// cursor sits at its beginning. When Anchor == Head the span is a bare
// cursor. Begin and End always return the lower and upper bound.
//
// Basic usage:
//
//	s := cursor.NewSpan(10, 4)       // reversed, cursor at 4
//	s = cursor.Extend(s, cursor.NewSpan(12, 14))
//	// s == Span{Anchor: 14, Head: 4}, still reversed
//
//	rest := cursor.Subtract(cursor.NewSpan(0, 10), cursor.NewSpan(3, 5))
//	// rest == [0,3) and [5,10)
//
// Thread Safety:
//
// Span is an immutable value type and safe for concurrent use. Selection is
// not thread-safe and should be protected by external synchronization if
// accessed concurrently.
package cursor
