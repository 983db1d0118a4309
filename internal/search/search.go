// Package search chooses the match an incremental search lands on.
//
// Matches come from the host's literal search. Matching folds case unless
// the query contains an uppercase letter. A forward search lands on the
// first match starting at or after the search origin, a backward search on
// the last match ending at or before it, and both wrap around to the
// opposite end of the buffer when nothing qualifies.
package search

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dshills/marksearch/internal/engine/cursor"
)

// ErrHostContract indicates the host returned matches that are invalid:
// unsorted, overlapping, reversed, empty or past the end of the buffer.
var ErrHostContract = errors.New("search: host returned invalid matches")

// Direction is the search direction.
type Direction uint8

const (
	// Forward searches toward the end of the buffer.
	Forward Direction = iota
	// Backward searches toward the start of the buffer.
	Backward
)

// DirectionOf maps a forward flag to a Direction.
func DirectionOf(forward bool) Direction {
	if forward {
		return Forward
	}
	return Backward
}

// IsForward reports whether d is Forward.
func (d Direction) IsForward() bool { return d == Forward }

// String returns the direction name.
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Finder lists literal matches of a query.
type Finder interface {
	FindAll(query string, caseSensitive bool) []cursor.Span
}

// Sizer reports the buffer length. A Finder that is also a Sizer has its
// matches checked against the end of the buffer.
type Sizer interface {
	Len() int
}

// Request describes one search step.
type Request struct {
	Query     string
	Direction Direction

	// Origin is the current focus, or the primary selection when there is
	// no focus yet.
	Origin cursor.Span

	// Repeat is set when the user asked for the next match explicitly.
	Repeat bool
}

// Result is the outcome of a search step.
type Result struct {
	Matches    []cursor.Span
	Index      int
	Match      cursor.Span
	Found      bool
	Wrapped    bool
	SearchFrom int
}

// Ordinal returns the 1-based position of the chosen match.
func (r Result) Ordinal() int {
	return r.Index + 1
}

// CaseSensitive reports whether query contains an uppercase letter.
func CaseSensitive(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// SearchFrom returns the offset a search step measures matches against.
// Forward steps back from the end of the origin by the query length and
// backward steps forward from its begin, so the match already under the
// origin qualifies again unless the step is a repeat.
func SearchFrom(req Request) int {
	n := len(req.Query)
	if req.Direction == Forward {
		from := req.Origin.End() - n
		if req.Repeat {
			from++
		}
		return from
	}
	from := req.Origin.Begin() + n
	if req.Repeat {
		from--
	}
	return from
}

// Find asks f for the matches of req.Query and chooses one.
func Find(f Finder, req Request) (Result, error) {
	if req.Query == "" {
		return Result{Index: -1}, nil
	}
	matches := f.FindAll(req.Query, CaseSensitive(req.Query))
	if sz, ok := f.(Sizer); ok {
		if err := ValidateBounds(matches, sz.Len()); err != nil {
			return Result{Index: -1}, err
		}
	}
	return Choose(matches, req)
}

// Choose picks the match for req among matches, which must be sorted and
// disjoint.
func Choose(matches []cursor.Span, req Request) (Result, error) {
	if err := Validate(matches); err != nil {
		return Result{Index: -1}, err
	}
	res := Result{Matches: matches, Index: -1, SearchFrom: SearchFrom(req)}
	if len(matches) == 0 {
		return res, nil
	}

	if req.Direction == Forward {
		for i, m := range matches {
			if m.Begin() >= res.SearchFrom {
				res.Index = i
				break
			}
		}
	} else {
		for i, m := range matches {
			if m.End() > res.SearchFrom {
				break
			}
			res.Index = i
		}
	}

	if res.Index < 0 {
		res.Wrapped = true
		if req.Direction == Forward {
			res.Index = 0
		} else {
			res.Index = len(matches) - 1
		}
	}
	res.Match = matches[res.Index]
	res.Found = true
	return res, nil
}

// Validate checks that matches are forward, non-empty, ascending and
// disjoint.
func Validate(matches []cursor.Span) error {
	for i, m := range matches {
		if m.IsReversed() {
			return fmt.Errorf("%w: match %d %v is reversed", ErrHostContract, i, m)
		}
		if m.IsEmpty() {
			return fmt.Errorf("%w: match %d %v is empty", ErrHostContract, i, m)
		}
		if i == 0 {
			continue
		}
		prev := matches[i-1]
		if m.Anchor <= prev.Anchor {
			return fmt.Errorf("%w: match %d %v not after %v", ErrHostContract, i, m, prev)
		}
		if m.Overlaps(prev) {
			return fmt.Errorf("%w: match %d %v overlaps %v", ErrHostContract, i, m, prev)
		}
	}
	return nil
}

// ValidateBounds checks that every match lies within a buffer of size
// bytes.
func ValidateBounds(matches []cursor.Span, size int) error {
	for i, m := range matches {
		if m.Begin() < 0 || m.End() > size {
			return fmt.Errorf("%w: match %d %v outside buffer of %d", ErrHostContract, i, m, size)
		}
	}
	return nil
}
