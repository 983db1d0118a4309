package cursor

// Reverse swaps the anchor and head of s.
func Reverse(s Span) Span {
	return s.Reverse()
}

// IsReversed reports whether the anchor of s lies after its head.
func IsReversed(s Span) bool {
	return s.IsReversed()
}

// Cover returns the smallest forward span covering both a and b.
func Cover(a, b Span) Span {
	return Span{
		Anchor: min(a.Begin(), b.Begin()),
		Head:   max(a.End(), b.End()),
	}
}

// Extend grows base until it covers target. The result keeps the
// direction of base so the moving end stays the moving end.
func Extend(base, target Span) Span {
	result := Cover(base, target)
	if base.IsReversed() != result.IsReversed() {
		result = result.Reverse()
	}
	return result
}

// Subtract removes the range of cut from s and returns what is left,
// as forward spans in ascending order: nothing when cut covers s, two spans
// when cut lies strictly inside s, otherwise one span.
func Subtract(s, cut Span) []Span {
	begin, end := s.Begin(), s.End()
	cutBegin, cutEnd := cut.Begin(), cut.End()

	beginInside := cutBegin > begin && cutBegin < end
	endInside := cutEnd > begin && cutEnd < end

	switch {
	case beginInside && endInside:
		return []Span{NewSpan(begin, cutBegin), NewSpan(cutEnd, end)}
	case beginInside:
		return []Span{NewSpan(begin, cutBegin)}
	case endInside:
		return []Span{NewSpan(cutEnd, end)}
	case cutBegin <= begin && cutEnd >= end:
		return nil
	default:
		return []Span{NewSpan(begin, end)}
	}
}
