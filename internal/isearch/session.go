package isearch

import (
	"fmt"
	"log/slog"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/marksel"
	"github.com/dshills/marksearch/internal/search"
)

// Replayer dispatches a command to the active view of w once the prompt has
// closed, through the same interception as any other command.
type Replayer func(w host.Window, a input.Action) error

// Session is the incremental search state of one window.
type Session struct {
	window host.Window
	marks  *marksel.Registry
	replay Replayer
	guard  *guard
	opts   Options
	logger *slog.Logger

	prompt       host.Prompt
	view         host.View
	direction    search.Direction
	focus        Focus
	cursorOnOpen int
	query        string
	last         search.Result

	lastCommittedQuery string

	closing  bool
	indirect bool
}

func newSession(w host.Window, marks *marksel.Registry, replay Replayer, g *guard, opts Options) *Session {
	s := &Session{
		window: w,
		marks:  marks,
		replay: replay,
		guard:  g,
		opts:   opts,
		logger: opts.logger().With("component", "isearch", "window", string(w.ID())),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.prompt = nil
	s.view = nil
	s.direction = search.Forward
	s.focus = Focus{}
	s.cursorOnOpen = -1
	s.query = ""
	s.last = search.Result{Index: -1}
}

// Window returns the window the session belongs to.
func (s *Session) Window() host.Window { return s.window }

// View returns the view being searched, or nil when closed.
func (s *Session) View() host.View { return s.view }

// IsOpen reports whether the prompt is showing.
func (s *Session) IsOpen() bool {
	return s.prompt != nil && s.prompt.IsShowing()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	switch {
	case !s.IsOpen():
		return StateClosed
	case s.query == "":
		return StateOpen
	default:
		return StateSearching
	}
}

// Focus returns the focused match.
func (s *Session) Focus() Focus { return s.focus }

// Direction returns the current search direction.
func (s *Session) Direction() search.Direction { return s.direction }

// Query returns the current query text.
func (s *Session) Query() string { return s.query }

// LastResult returns the outcome of the latest search step.
func (s *Session) LastResult() search.Result { return s.last }

// LastCommittedQuery returns the query of the last committed search.
func (s *Session) LastCommittedQuery() string { return s.lastCommittedQuery }

// CursorOnOpen returns the cursor recorded when the session opened, or -1.
func (s *Session) CursorOnOpen() int { return s.cursorOnOpen }

// Open starts a search of the active view. If the session is already open
// it only takes focus back to the prompt. A selection of several spans is
// reduced to its primary span first.
func (s *Session) Open(dir search.Direction) error {
	if s.IsOpen() {
		s.window.FocusPrompt()
		return nil
	}
	view := s.window.ActiveView()
	if view == nil {
		return ErrNoView
	}
	ms := s.marks.Get(view)
	if len(view.Selection()) > 1 {
		ms.SelectPrimary(marksel.MarkKeep, false, false)
	}
	cur := ms.PrimaryCursor()

	s.reset()
	s.view = view
	s.direction = dir
	s.cursorOnOpen = cur

	p := s.window.ShowPrompt("I-search", "", host.PromptHandler{
		OnChange: s.onChange,
		OnDone:   s.onDone,
		OnCancel: s.onCancel,
	})
	if p == nil {
		s.reset()
		return ErrNoPrompt
	}
	s.prompt = p
	ms.Ring().Push(cur)
	s.window.FocusPrompt()
	s.logger.Debug("opened", "direction", dir.String(), "cursor", cur)
	return nil
}

// Repeat steps to the next match in dir. With an empty query the last
// committed query is loaded into the prompt instead, which searches through
// the change callback.
func (s *Session) Repeat(dir search.Direction) error {
	if !s.IsOpen() {
		return nil
	}
	s.direction = dir
	if s.query == "" {
		if s.lastCommittedQuery != "" {
			s.prompt.SetText(s.lastCommittedQuery)
		}
		return nil
	}
	return s.search(true)
}

// Close hides the prompt and cleans up as a cancel.
func (s *Session) Close() {
	if s.prompt == nil {
		return
	}
	if s.prompt.IsShowing() {
		s.window.HidePrompt()
	}
	if s.prompt != nil {
		s.cleanup(false)
	}
}

// OnSelectionModified closes the session when the selection of the
// searched view v has split into several spans.
func (s *Session) OnSelectionModified(v host.View) {
	if s.closing || !s.IsOpen() || s.view == nil || s.view.ID() != v.ID() {
		return
	}
	s.closeOnSplit()
}

// closeOnSplit cancels the session if the searched view holds more than
// one selection span.
func (s *Session) closeOnSplit() bool {
	n := len(s.view.Selection())
	if n <= 1 {
		return false
	}
	s.logger.Warn("selection split during search, closing", "spans", n)
	s.Close()
	return true
}

// OnDeactivated handles the prompt losing focus without commit or cancel.
func (s *Session) OnDeactivated() {
	s.logger.Debug("deactivated")
	s.Close()
}

// InterceptPromptCommand handles a command aimed at the prompt. Movement
// commits or cancels the search and is replayed against the view; it
// reports true when it consumed the command.
func (s *Session) InterceptPromptCommand(a input.Action) (bool, error) {
	if !s.IsOpen() || !s.opts.Movement[a.Name] {
		return false, nil
	}
	s.logger.Debug("closing to replay", "command", a.Name.String())

	s.indirect = true
	s.Close()
	s.indirect = false

	if s.replay == nil {
		return true, nil
	}
	return true, s.replay(s.window, a.WithSource(input.SourceReplay))
}

func (s *Session) onChange(text string) {
	if s.closing {
		return
	}
	s.query = text
	if text == "" {
		s.emptyQuery()
		return
	}
	if err := s.search(false); err != nil {
		s.logger.Error("search aborted", "error", err)
		s.Close()
	}
}

func (s *Session) onDone(text string) {
	if s.closing {
		return
	}
	s.lastCommittedQuery = text
	s.cleanup(true)
}

func (s *Session) onCancel() {
	if s.closing {
		return
	}
	commit := s.indirect && s.opts.IndirectCancelCommits
	if commit {
		s.lastCommittedQuery = s.prompt.Text()
	}
	s.cleanup(commit)
}

func (s *Session) search(repeat bool) error {
	if s.closing || !s.IsOpen() {
		return nil
	}
	view := s.view
	if s.closeOnSplit() {
		return nil
	}

	ms := s.marks.Get(view)
	keepMark := ms.IsMarkActive()
	action := marksel.MarkClear
	if keepMark {
		action = marksel.MarkKeep
	}

	origin := ms.SelectPrimary(action, false, false)
	if s.focus.HasSpan() {
		origin = s.focus.Span
	}

	res, err := search.Find(view, search.Request{
		Query:     s.query,
		Direction: s.direction,
		Origin:    origin,
		Repeat:    repeat,
	})
	if err != nil {
		return fmt.Errorf("search %q: %w", s.query, err)
	}
	s.last = res

	if !res.Found {
		s.focus = Focus{}
		view.SetStatus(s.opts.StatusKey, "No matches")
		s.clearHighlights(view)
		s.logger.Debug("no match", "query", s.query, "direction", s.direction.String())
		return nil
	}

	state := FocusPassive
	if repeat {
		state = FocusActive
	}
	s.focus = Focus{State: state, Span: res.Match}

	ms.Select(res.Match, action, keepMark, true)
	ms.HideSelection()

	view.SetStatus(s.opts.StatusKey, fmt.Sprintf("Match %d of %d", res.Ordinal(), len(res.Matches)))

	view.AddHighlight(FoundHighlight, res.Matches, s.opts.FoundStyle)
	view.AddHighlight(FocusHighlight, []cursor.Span{res.Match}, s.opts.FocusStyle)
	if keepMark {
		view.AddHighlight(ExtraHighlight, cursor.Subtract(ms.PrimarySpan(), res.Match), s.opts.ExtraStyle)
	} else {
		view.RemoveHighlight(ExtraHighlight)
	}

	if res.Wrapped {
		s.logger.Info("wrapped", "query", s.query, "direction", s.direction.String(),
			"match", res.Match.String(), "from", res.SearchFrom)
	} else {
		s.logger.Debug("match", "query", s.query, "direction", s.direction.String(),
			"match", res.Match.String(), "from", res.SearchFrom)
	}
	return nil
}

// emptyQuery drops the focus and, if configured, puts the selection back
// where it was when the session opened.
func (s *Session) emptyQuery() {
	s.focus = Focus{}
	s.last = search.Result{Index: -1}
	s.clearHighlights(s.view)
	s.view.EraseStatus(s.opts.StatusKey)

	if !s.opts.RestoreOnEmptyQuery || s.cursorOnOpen < 0 {
		return
	}
	ms := s.marks.Get(s.view)
	off := min(s.cursorOnOpen, s.view.Len())
	if mark, ok := ms.Mark(); ok {
		ms.Select(cursor.NewSpan(mark, off), marksel.MarkKeep, false, true)
	} else {
		ms.Select(cursor.NewCursorSpan(off), marksel.MarkClear, false, true)
	}
	ms.HideSelection()
}

func (s *Session) cleanup(commit bool) {
	if s.prompt == nil || s.closing {
		return
	}
	s.guard.run(func() {
		if s.prompt == nil {
			return
		}
		s.closing = true
		defer func() { s.closing = false }()

		view := s.view
		s.logger.Debug("closed", "commit", commit, "query", s.query)
		s.reset()

		if view == nil {
			return
		}
		if _, live := s.marks.Lookup(view.ID()); !live {
			return
		}
		view.EraseStatus(s.opts.StatusKey)
		s.clearHighlights(view)

		ms := s.marks.Get(view)
		ms.ShowSelection()
		if !ms.IsMarkActive() {
			ms.ClearAll()
		}
	})
}

func (s *Session) clearHighlights(view host.View) {
	view.RemoveHighlight(FoundHighlight)
	view.RemoveHighlight(FocusHighlight)
	view.RemoveHighlight(ExtraHighlight)
}
