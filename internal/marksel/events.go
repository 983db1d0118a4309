package marksel

import (
	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/input"
)

// InterceptCommand inspects a command before it runs on this view. It
// returns the rewritten action and true when the command must be
// re-intercepted in its new form; an action that already extends is never
// rewritten.
func (m *MarkSel) InterceptCommand(a input.Action) (input.Action, bool) {
	if !m.policy.Movement[a.Name] || a.Args.Extend {
		return a, false
	}
	if m.IsMarkActive() && len(m.view.Selection()) == 1 {
		m.logger.Debug("coercing movement to extend", "command", a.Name.String())
		return a.WithExtend(true), true
	}
	return a, false
}

// BeforeCommand runs once the final form of a command is known, right before
// it executes. Structural commands arm one pending modification per
// repetition.
func (m *MarkSel) BeforeCommand(a input.Action) {
	if !m.policy.Structural[a.Name] {
		return
	}
	n := a.Times()
	m.pendingIgnoreModification += n
	m.pendingKeepMark += n
}

// AfterCommand runs once a command on this view has finished, whether or not
// it succeeded.
func (m *MarkSel) AfterCommand(a input.Action) {
	switch {
	case m.policy.CollapseAfter[a.Name]:
		if len(m.view.Selection()) > 0 {
			m.ClearAll()
		}
	case m.policy.Structural[a.Name]:
		if m.pendingIgnoreModification > 0 || m.pendingKeepMark > 0 {
			m.logger.Debug("dropping unconsumed structural counters",
				"command", a.Name.String(),
				"ignore", m.pendingIgnoreModification,
				"keep", m.pendingKeepMark)
		}
		m.pendingIgnoreModification = 0
		m.pendingKeepMark = 0
	}
}

// OnModified runs after the buffer changed.
func (m *MarkSel) OnModified() {
	if m.pendingIgnoreModification > 0 {
		m.pendingIgnoreModification--
		if m.pendingKeepMark > 0 {
			m.pendingKeepMark--
			if sel := m.view.Selection(); m.IsMarkActive() && len(sel) > 0 {
				m.mark = sel[0].Anchor
			}
		}
		return
	}
	if m.IsMarkActive() {
		m.logger.Debug("edit drops the mark")
		m.ClearAll()
	}
}

// OnSelectionModified runs after the selection changed for any reason. A
// single span is stretched back over an active mark; several spans
// invalidate the mark.
func (m *MarkSel) OnSelectionModified() {
	if m.refreshing || !m.IsMarkActive() {
		return
	}
	sel := m.view.Selection()
	switch {
	case len(sel) > 1:
		m.logger.Debug("multiple spans drop the mark")
		m.ClearMark()
	case len(sel) == 1:
		s := sel[0]
		switch {
		case m.mark < s.Begin():
			m.setSelection(cursor.NewSpan(m.mark, s.End()))
		case m.mark > s.End():
			m.setSelection(cursor.NewSpan(m.mark, s.Begin()))
		}
	}
}
