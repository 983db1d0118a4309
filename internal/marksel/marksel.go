package marksel

import (
	"log/slog"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
)

const noMark = -1

// MarkSel is the mark and selection state of one view.
type MarkSel struct {
	view    host.View
	policy  Policy
	ring    *Ring
	logger  *slog.Logger
	ringLog *slog.Logger

	mark int

	// Coalesced effects of in-flight structural commands.
	pendingIgnoreModification int
	pendingKeepMark           int

	hidden     *cursor.Span
	refreshing bool
}

// New creates the state for view.
func New(view host.View, opts Options) *MarkSel {
	base := opts.logger().With("view", string(view.ID()))
	return &MarkSel{
		view:    view,
		policy:  opts.Policy,
		ring:    NewRing(opts.RingSize),
		logger:  base.With("component", "marksel"),
		ringLog: base.With("component", "mark-ring"),
		mark:    noMark,
	}
}

// View returns the view this state belongs to.
func (m *MarkSel) View() host.View { return m.view }

// Ring returns the mark ring.
func (m *MarkSel) Ring() *Ring { return m.ring }

// SetPolicy replaces the command classification.
func (m *MarkSel) SetPolicy(p Policy) { m.policy = p }

// Mark returns the mark and whether it is active.
func (m *MarkSel) Mark() (int, bool) {
	return m.mark, m.mark != noMark
}

// IsMarkActive reports whether the mark is set.
func (m *MarkSel) IsMarkActive() bool {
	return m.mark != noMark
}

// ClearMark deactivates the mark without touching the selection.
func (m *MarkSel) ClearMark() {
	m.mark = noMark
}

// Pending returns the structural command counters.
func (m *MarkSel) Pending() (ignoreModification, keepMark int) {
	return m.pendingIgnoreModification, m.pendingKeepMark
}

// PrimarySpan returns the live primary span, or the hidden one while the
// selection is hidden. It panics if there is neither.
func (m *MarkSel) PrimarySpan() cursor.Span {
	return m.primary("primary span")
}

// PrimaryCursor returns the head of the primary span.
func (m *MarkSel) PrimaryCursor() int {
	return m.PrimarySpan().Head
}

func (m *MarkSel) primary(op string) cursor.Span {
	if sel := m.view.Selection(); len(sel) > 0 {
		return sel[0]
	}
	if m.hidden != nil {
		return *m.hidden
	}
	panic(&InvariantError{Op: op, Err: ErrEmptySelection})
}

// setSelection writes spans without reacting to the resulting notification.
func (m *MarkSel) setSelection(spans ...cursor.Span) {
	m.refreshing = true
	defer func() { m.refreshing = false }()
	m.view.SetSelection(spans)
}

// PlaceMark sets the mark at the primary cursor and records it in the ring.
// Placing it again where it already is clears the mark and collapses the
// selection instead. Unless keepSelection is set the selection collapses to
// the cursor.
func (m *MarkSel) PlaceMark(keepSelection bool) {
	cur := m.primary("place mark").Head
	if m.mark == cur {
		m.logger.Debug("mark toggled off", "offset", cur)
		m.ClearAll()
		return
	}
	m.mark = cur
	m.ring.Push(cur)
	if !keepSelection {
		m.setSelection(cursor.NewCursorSpan(cur))
	}
	m.logger.Debug("mark placed", "offset", cur)
}

// CollapseToCursor drops every span but the primary one and collapses it to
// its head.
func (m *MarkSel) CollapseToCursor(keepMark bool) {
	p := m.primary("collapse")
	m.hidden = nil
	m.setSelection(p.Collapse())
	if !keepMark {
		m.ClearMark()
	}
}

// ClearAll collapses to the cursor and clears the mark.
func (m *MarkSel) ClearAll() {
	m.CollapseToCursor(false)
}

// Select replaces the selection with target, or with target merged into the
// primary span when extend is set, then applies action to the mark.
func (m *MarkSel) Select(target cursor.Span, action MarkAction, extend, show bool) cursor.Span {
	result := target
	if extend {
		result = cursor.Extend(m.primary("select"), target)
	}
	m.hidden = nil
	m.setSelection(result)

	if show {
		m.view.Show(target)
	}

	switch action {
	case MarkClear:
		m.ClearMark()
	case MarkSet:
		m.mark = target.Anchor
	case MarkKeep:
		if m.IsMarkActive() {
			m.mark = target.Anchor
		}
	}
	return result
}

// SelectPrimary reselects the primary span alone.
func (m *MarkSel) SelectPrimary(action MarkAction, extend, show bool) cursor.Span {
	return m.Select(m.primary("select primary"), action, extend, show)
}

// IsSelectionHidden reports whether HideSelection is in effect.
func (m *MarkSel) IsSelectionHidden() bool {
	return m.hidden != nil && len(m.view.Selection()) == 0
}

// HideSelection stores the primary span and empties the live selection.
func (m *MarkSel) HideSelection() {
	if m.IsSelectionHidden() {
		return
	}
	p := m.primary("hide selection")
	m.hidden = &p
	m.setSelection()
}

// ShowSelection restores the span stored by HideSelection.
func (m *MarkSel) ShowSelection() {
	if len(m.view.Selection()) == 0 {
		m.setSelection(m.primary("show selection"))
	}
	m.hidden = nil
}

// ReverseSelection swaps the ends of the primary span and sets the mark at
// the new anchor.
func (m *MarkSel) ReverseSelection() {
	m.Select(m.primary("reverse").Reverse(), MarkSet, false, true)
}

// ExpandToLines grows the primary span over the full lines it touches,
// keeping its direction, and sets the mark at the new anchor.
func (m *MarkSel) ExpandToLines() {
	p := m.primary("expand to lines")
	m.Select(cursor.Extend(p, m.view.LineSpan(p)), MarkSet, false, true)
}

// CycleMarkPrev jumps to the previous mark ring entry.
func (m *MarkSel) CycleMarkPrev() bool {
	off, ok := m.ring.Prev(m.primary("cycle mark").Head)
	return m.jump(off, ok)
}

// CycleMarkNext jumps to the next mark ring entry.
func (m *MarkSel) CycleMarkNext() bool {
	off, ok := m.ring.Next(m.primary("cycle mark").Head)
	return m.jump(off, ok)
}

func (m *MarkSel) jump(off int, ok bool) bool {
	if !ok {
		m.ringLog.Debug("ring exhausted")
		return false
	}
	off = min(max(off, 0), m.view.Len())
	m.Select(cursor.NewCursorSpan(off), MarkClear, false, true)
	m.ringLog.Debug("jumped", "offset", off)
	return true
}
