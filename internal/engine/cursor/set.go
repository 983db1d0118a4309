package cursor

import "sort"

// Selection manages the spans selected in one view.
// Spans are kept sorted by position and non-overlapping.
// The first span is considered the "primary" span.
//
// Unlike an editor cursor set, a Selection may be empty: hosts use the
// empty state while a search temporarily hides the live selection.
type Selection struct {
	spans []Span
}

// NewSelection creates a selection holding a single span.
func NewSelection(initial Span) *Selection {
	return &Selection{spans: []Span{initial}}
}

// NewSelectionAt creates a selection with a single cursor at offset.
func NewSelectionAt(offset int) *Selection {
	return NewSelection(NewCursorSpan(offset))
}

// NewSelectionFromSlice creates a selection from spans.
// The spans will be normalized (sorted and merged).
func NewSelectionFromSlice(spans []Span) *Selection {
	s := &Selection{}
	s.SetAll(spans)
	return s
}

// Primary returns the primary (first) span and whether one exists.
func (s *Selection) Primary() (Span, bool) {
	if len(s.spans) == 0 {
		return Span{}, false
	}
	return s.spans[0], true
}

// All returns a copy of all spans.
// The returned slice is safe to modify without affecting the Selection.
func (s *Selection) All() []Span {
	result := make([]Span, len(s.spans))
	copy(result, s.spans)
	return result
}

// Count returns the number of spans.
func (s *Selection) Count() int {
	return len(s.spans)
}

// IsMulti returns true if there are multiple spans.
func (s *Selection) IsMulti() bool {
	return len(s.spans) > 1
}

// IsSingle returns true if there is exactly one span.
func (s *Selection) IsSingle() bool {
	return len(s.spans) == 1
}

// Add adds a new span, merging with overlapping ones.
func (s *Selection) Add(span Span) {
	s.spans = append(s.spans, span)
	s.normalize()
}

// Set replaces all spans with a single span.
func (s *Selection) Set(span Span) {
	s.spans = []Span{span}
}

// SetAll replaces all spans. An empty slice empties the selection.
func (s *Selection) SetAll(spans []Span) {
	s.spans = make([]Span, len(spans))
	copy(s.spans, spans)
	s.normalize()
}

// Clear removes every span.
func (s *Selection) Clear() {
	s.spans = s.spans[:0]
}

// KeepPrimary removes all spans except the primary one.
func (s *Selection) KeepPrimary() {
	if len(s.spans) > 1 {
		s.spans = s.spans[:1]
	}
}

// MapInPlace applies f to each span in place.
func (s *Selection) MapInPlace(f func(span Span) Span) {
	for i, span := range s.spans {
		s.spans[i] = f(span)
	}
	s.normalize()
}

// Clamp clamps all spans to the valid range [0, maxOffset].
func (s *Selection) Clamp(maxOffset int) {
	s.MapInPlace(func(span Span) Span {
		return Span{
			Anchor: clampOffset(span.Anchor, maxOffset),
			Head:   clampOffset(span.Head, maxOffset),
		}
	})
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	return &Selection{spans: s.All()}
}

// Equals returns true if two selections hold the same spans.
func (s *Selection) Equals(other *Selection) bool {
	if other == nil || s.Count() != other.Count() {
		return false
	}
	for i, span := range s.spans {
		if !span.Equals(other.spans[i]) {
			return false
		}
	}
	return true
}

// normalize sorts spans and merges overlapping or adjacent ones.
// Merging keeps the direction of the earlier span.
func (s *Selection) normalize() {
	if len(s.spans) <= 1 {
		return
	}

	sort.SliceStable(s.spans, func(i, j int) bool {
		bi, bj := s.spans[i].Begin(), s.spans[j].Begin()
		if bi != bj {
			return bi < bj
		}
		return s.spans[i].End() > s.spans[j].End()
	})

	merged := s.spans[:1]
	for _, span := range s.spans[1:] {
		last := &merged[len(merged)-1]
		if span.Begin() <= last.End() {
			*last = Extend(*last, span)
		} else {
			merged = append(merged, span)
		}
	}
	s.spans = merged
}

func clampOffset(offset, maxOffset int) int {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
