package cursor

import "fmt"

// Span represents a directed range of the buffer.
// Anchor is the fixed end; Head is where the cursor rests.
// When Anchor == Head, this represents a cursor with no extent.
// Span is an immutable value type.
type Span struct {
	Anchor int // Fixed end
	Head   int // Cursor end
}

// NewSpan creates a span from anchor to head.
func NewSpan(anchor, head int) Span {
	return Span{Anchor: anchor, Head: head}
}

// NewCursorSpan creates a span representing just a cursor (no extent).
func NewCursorSpan(offset int) Span {
	return Span{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the span has no extent (just a cursor).
func (s Span) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsReversed returns true if the anchor lies after the head.
func (s Span) IsReversed() bool {
	return s.Anchor > s.Head
}

// Len returns the length of the span.
func (s Span) Len() int {
	return s.End() - s.Begin()
}

// Begin returns the lower bound of the span.
func (s Span) Begin() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the span.
func (s Span) End() int {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// Cursor returns the head position.
func (s Span) Cursor() int {
	return s.Head
}

// Reverse returns a span with anchor and head swapped.
func (s Span) Reverse() Span {
	return Span{Anchor: s.Head, Head: s.Anchor}
}

// Normalize returns a forward span (anchor <= head) covering the same range.
func (s Span) Normalize() Span {
	return Span{Anchor: s.Begin(), Head: s.End()}
}

// Collapse collapses the span to a cursor at the head.
func (s Span) Collapse() Span {
	return Span{Anchor: s.Head, Head: s.Head}
}

// Contains returns true if offset lies within [begin, end].
func (s Span) Contains(offset int) bool {
	return offset >= s.Begin() && offset <= s.End()
}

// Overlaps returns true if the two spans share at least one offset.
// Adjacent spans do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Begin() < other.End() && other.Begin() < s.End()
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsReversed() {
		dir = "←"
	}
	return fmt.Sprintf("Span(%d%s%d)", s.Anchor, dir, s.Head)
}

// Equals returns true if two spans have the same anchor and head.
func (s Span) Equals(other Span) bool {
	return s.Anchor == other.Anchor && s.Head == other.Head
}

// SameRange returns true if two spans cover the same range,
// regardless of direction.
func (s Span) SameRange(other Span) bool {
	return s.Begin() == other.Begin() && s.End() == other.End()
}
