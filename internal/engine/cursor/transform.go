package cursor

// Edit describes a replacement of [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Delta returns how much the edit changes the buffer length.
func (e Edit) Delta() int {
	return len(e.Text) - (e.End - e.Start)
}

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset int, edit Edit) int {
	if edit.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Start >= offset {
		return offset
	}
	return edit.Start + len(edit.Text)
}

// TransformSpan updates a span after an edit.
// Both anchor and head are transformed independently.
func TransformSpan(s Span, edit Edit) Span {
	return Span{
		Anchor: TransformOffset(s.Anchor, edit),
		Head:   TransformOffset(s.Head, edit),
	}
}

// TransformSelection updates every span of sel after an edit.
func TransformSelection(sel *Selection, edit Edit) {
	sel.MapInPlace(func(s Span) Span {
		return TransformSpan(s, edit)
	})
}
