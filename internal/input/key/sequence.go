package key

import (
	"fmt"
	"slices"
	"strings"
)

// Sequence represents a series of key events forming a command.
// Examples: "C-x C-x" (exchange point and mark), "C-u C-SPC" (pop mark)
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates a sequence from the given events.
func NewSequence(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Clear removes all events from the sequence.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}

// String returns the space-separated emacs notation.
func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if both sequences hold the same events.
func (s *Sequence) Equals(other *Sequence) bool {
	return slices.Equal(s.Events, other.Events)
}

// HasPrefix returns true if prefix is a (possibly equal) prefix of s.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix.Len() > s.Len() {
		return false
	}
	return slices.Equal(s.Events[:prefix.Len()], prefix.Events)
}

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{Events: slices.Clone(s.Events)}
}

// ParseSequence parses a space-separated key sequence like "C-x C-x".
func ParseSequence(s string) (*Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	seq := &Sequence{Events: make([]Event, 0, len(fields))}
	for _, f := range fields {
		e, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("sequence %q: %w", s, err)
		}
		seq.Add(e)
	}
	return seq, nil
}

// MustParseSequence parses a key sequence and panics on error.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}
