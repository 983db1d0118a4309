package marksel

// MarkAction says what Select does to the mark.
type MarkAction uint8

const (
	// MarkClear deactivates the mark.
	MarkClear MarkAction = iota
	// MarkKeep moves an active mark to the target anchor and leaves an
	// inactive one inactive.
	MarkKeep
	// MarkSet activates the mark at the target anchor.
	MarkSet
)

// String returns the action name.
func (a MarkAction) String() string {
	switch a {
	case MarkClear:
		return "clear"
	case MarkKeep:
		return "keep"
	case MarkSet:
		return "set"
	default:
		return "unknown"
	}
}
