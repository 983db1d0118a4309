package app

import (
	"errors"
	"testing"

	"github.com/dshills/marksearch/internal/config"
	"github.com/dshills/marksearch/internal/dispatcher"
	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host/memhost"
	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/input/key"
	"github.com/dshills/marksearch/internal/input/keymap"
	"github.com/dshills/marksearch/internal/isearch"
	"github.com/dshills/marksearch/internal/marksel"
	"github.com/dshills/marksearch/internal/search"
)

type env struct {
	host *memhost.Host
	win  *memhost.Window
	view *memhost.View
	app  *App
}

func newEnv(t *testing.T, text string, opts ...Option) *env {
	t.Helper()
	return newEnvWith(t, text, config.Default(), opts...)
}

func newEnvWith(t *testing.T, text string, cfg config.Config, opts ...Option) *env {
	t.Helper()
	h := memhost.New()
	a, err := New(h, cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	h.SetListener(a)
	w := h.NewWindow(text)
	return &env{host: h, win: w, view: w.Active(), app: a}
}

func (e *env) cursorAt(offset int) {
	e.view.SetSelection([]cursor.Span{cursor.NewCursorSpan(offset)})
}

func (e *env) selection(t *testing.T) cursor.Span {
	t.Helper()
	sel := e.view.Selection()
	if len(sel) != 1 {
		t.Fatalf("expected one span, got %v", sel)
	}
	return sel[0]
}

func (e *env) marks() *marksel.MarkSel {
	return e.app.Marks(e.view)
}

func (e *env) session() *isearch.Session {
	return e.app.Session(e.win)
}

func (e *env) dispatch(t *testing.T, a input.Action) handler.Result {
	t.Helper()
	r := e.app.Dispatch(e.win, e.win.InPrompt(), a)
	if err := r.Err(); err != nil {
		t.Fatalf("Dispatch(%s): %v", a, err)
	}
	return r
}

// keys presses each key spec in turn, in the prompt when it has focus.
func (e *env) keys(t *testing.T, specs ...string) keymap.Status {
	t.Helper()
	var status keymap.Status
	for _, spec := range specs {
		var err error
		status, err = e.app.HandleKey(e.win, e.win.InPrompt(), key.MustParse(spec))
		if err != nil {
			t.Fatalf("HandleKey(%s): %v", spec, err)
		}
	}
	return status
}

func (e *env) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if _, err := e.app.HandleKey(e.win, e.win.InPrompt(), key.NewRuneEvent(r, key.ModNone)); err != nil {
			t.Fatalf("typing %q: %v", r, err)
		}
	}
}

func TestMovementExtendsFromMark(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.cursorAt(4)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}

	move := input.Move(input.ByCharacters, true)
	move.Count = 3
	r := e.dispatch(t, move)

	if !r.IsOK() {
		t.Errorf("status = %v", r.Status)
	}
	if got := e.selection(t); got != cursor.NewSpan(4, 7) {
		t.Errorf("selection = %v, want Span(4→7)", got)
	}
}

func TestMovementWithoutMarkMovesCursor(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.cursorAt(4)
	e.dispatch(t, input.Move(input.ByWords, true))

	if got := e.selection(t); got != cursor.NewCursorSpan(7) {
		t.Errorf("selection = %v", got)
	}
}

func TestSetMarkTwiceClears(t *testing.T) {
	e := newEnv(t, "the cat")
	e.cursorAt(2)
	for range 2 {
		if err := e.app.SetMark(e.win); err != nil {
			t.Fatal(err)
		}
	}
	if e.marks().IsMarkActive() {
		t.Error("second set_mark at the same offset should clear the mark")
	}
}

func TestEditDropsMark(t *testing.T) {
	e := newEnv(t, "the cat")
	e.cursorAt(0)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}
	e.dispatch(t, input.Move(input.ByCharacters, true))
	e.dispatch(t, input.Insert("x"))

	if e.marks().IsMarkActive() {
		t.Error("an edit should clear the mark")
	}
	if e.view.Text() != "xhe cat" {
		t.Errorf("text = %q", e.view.Text())
	}
	if got := e.selection(t); !got.IsEmpty() {
		t.Errorf("selection %v should be collapsed", got)
	}
}

func TestStructuralCommandKeepsMark(t *testing.T) {
	e := newEnv(t, "abcdefg\nij")
	e.cursorAt(4)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}
	e.dispatch(t, input.Move(input.ByCharacters, true))
	e.dispatch(t, input.NewAction(input.CmdIndent))

	if got := e.selection(t); got != cursor.NewSpan(5, 6) {
		t.Errorf("selection = %v", got)
	}
	if off, ok := e.marks().Mark(); !ok || off != 5 {
		t.Errorf("mark = %d, %v; want 5", off, ok)
	}
	if ignore, keep := e.marks().Pending(); ignore != 0 || keep != 0 {
		t.Errorf("pending counters = %d, %d after the command", ignore, keep)
	}
}

func TestCopyCollapses(t *testing.T) {
	e := newEnv(t, "hello world")
	e.cursorAt(0)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}
	e.dispatch(t, input.MoveTo(input.ToLineEnd))
	e.dispatch(t, input.NewAction(input.CmdCopy))

	if e.host.Clipboard() != "hello world" {
		t.Errorf("clipboard = %q", e.host.Clipboard())
	}
	if e.marks().IsMarkActive() {
		t.Error("copy should clear the mark")
	}
	if got := e.selection(t); got != cursor.NewCursorSpan(11) {
		t.Errorf("selection = %v", got)
	}
}

func TestReverseAndExpand(t *testing.T) {
	e := newEnv(t, "one\ntwo\nthree")
	e.cursorAt(1)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}
	e.dispatch(t, input.Move(input.ByLines, true))

	if err := e.app.ReverseSelection(e.win); err != nil {
		t.Fatal(err)
	}
	if got := e.selection(t); got != cursor.NewSpan(5, 1) {
		t.Errorf("reversed = %v", got)
	}

	if err := e.app.ExpandSelectionToLines(e.win); err != nil {
		t.Fatal(err)
	}
	if got := e.selection(t); got != cursor.NewSpan(7, 0) {
		t.Errorf("expanded = %v", got)
	}
	if off, _ := e.marks().Mark(); off != 7 {
		t.Errorf("mark = %d, want 7", off)
	}
}

func TestClearSelection(t *testing.T) {
	e := newEnv(t, "the cat")
	e.cursorAt(1)
	if err := e.app.SetMark(e.win); err != nil {
		t.Fatal(err)
	}
	e.dispatch(t, input.MoveTo(input.ToLineEnd))

	if err := e.app.ClearSelection(e.win); err != nil {
		t.Fatal(err)
	}
	if e.marks().IsMarkActive() {
		t.Error("mark still active")
	}
	if got := e.selection(t); got != cursor.NewCursorSpan(7) {
		t.Errorf("selection = %v", got)
	}
}

func TestCycleMark(t *testing.T) {
	e := newEnv(t, "0123456789")
	for _, off := range []int{2, 5} {
		e.cursorAt(off)
		if err := e.app.SetMark(e.win); err != nil {
			t.Fatal(err)
		}
		if err := e.app.ClearSelection(e.win); err != nil {
			t.Fatal(err)
		}
	}
	e.cursorAt(8)

	steps := []struct {
		name  string
		prev  bool
		moved bool
		want  int
	}{
		{"prev", true, true, 5},
		{"prev again", true, true, 2},
		{"exhausted", true, false, 2},
		{"next", false, true, 5},
	}
	for _, step := range steps {
		cycle := e.app.CycleMarkNext
		if step.prev {
			cycle = e.app.CycleMarkPrev
		}
		moved, err := cycle(e.win)
		if err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if moved != step.moved {
			t.Errorf("%s: moved = %v, want %v", step.name, moved, step.moved)
		}
		if got := e.selection(t); got != cursor.NewCursorSpan(step.want) {
			t.Errorf("%s: selection = %v, want cursor at %d", step.name, got, step.want)
		}
	}
}

func TestRunCommand(t *testing.T) {
	e := newEnv(t, "the cat")
	e.cursorAt(0)
	for _, name := range []string{"set_mark", "end_of_line"} {
		if err := e.app.RunCommand(e.win, name); err != nil {
			t.Fatalf("RunCommand(%s): %v", name, err)
		}
	}
	if got := e.selection(t); got != cursor.NewSpan(0, 7) {
		t.Errorf("selection = %v", got)
	}

	if err := e.app.RunCommand(e.win, "no_such_action"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action error = %v", err)
	}
	if err := e.app.SetMark(nil); !errors.Is(err, ErrNoWindow) {
		t.Errorf("nil window error = %v", err)
	}
}

func TestBrokenSelectionBecomesError(t *testing.T) {
	e := newEnv(t, "the cat")
	e.view.SetSelection(nil)

	err := e.app.SetMark(e.win)
	if !errors.Is(err, dispatcher.ErrPanic) {
		t.Fatalf("error = %v, want a recovered panic", err)
	}
	if !errors.Is(err, marksel.ErrEmptySelection) {
		t.Errorf("error = %v, want it to wrap the invariant", err)
	}
	var op *OperationError
	if !errors.As(err, &op) || op.Op != "set_mark" {
		t.Errorf("error = %#v, want an OperationError for set_mark", err)
	}
}

func TestKeySequences(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.cursorAt(2)

	if st := e.keys(t, "C-SPC", "C-f", "C-f"); st != keymap.StatusMatched {
		t.Fatalf("status = %v", st)
	}
	if got := e.selection(t); got != cursor.NewSpan(2, 4) {
		t.Fatalf("selection = %v", got)
	}

	if st := e.keys(t, "C-x"); st != keymap.StatusPending {
		t.Fatalf("C-x status = %v, want pending", st)
	}
	if e.app.PendingKeys() != "C-x" {
		t.Errorf("pending = %q", e.app.PendingKeys())
	}
	e.keys(t, "C-x")

	if got := e.selection(t); got != cursor.NewSpan(4, 2) {
		t.Errorf("selection = %v, want reversed", got)
	}
	if e.app.PendingKeys() != "" {
		t.Errorf("pending = %q after a full sequence", e.app.PendingKeys())
	}
}

func TestSelfInsertOutsidePrompt(t *testing.T) {
	e := newEnv(t, "cat")
	e.cursorAt(0)
	e.typeText(t, "a ")

	if e.view.Text() != "a cat" {
		t.Errorf("text = %q", e.view.Text())
	}
}

func TestIncrementalSearchByKeys(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.cursorAt(0)

	e.keys(t, "C-s")
	if !e.session().IsOpen() || !e.win.InPrompt() {
		t.Fatal("C-s should open the search prompt")
	}

	e.typeText(t, "at")
	if got := e.session().Focus().Span; got != cursor.NewSpan(5, 7) {
		t.Errorf("focus = %v", got)
	}
	if got := e.view.Status(isearch.DefaultStatusKey); got != "Match 1 of 2" {
		t.Errorf("status = %q", got)
	}

	e.keys(t, "C-s")
	if got := e.session().Focus().Span; got != cursor.NewSpan(9, 11) {
		t.Errorf("focus after repeat = %v", got)
	}

	if st := e.keys(t, "RET"); st != keymap.StatusUnbound {
		t.Errorf("RET in the prompt should be left to the host, got %v", st)
	}
	e.win.Commit()

	if e.session().IsOpen() {
		t.Fatal("session still open after commit")
	}
	if e.session().LastCommittedQuery() != "at" {
		t.Errorf("last committed = %q", e.session().LastCommittedQuery())
	}
	if got := e.selection(t); got != cursor.NewCursorSpan(11) {
		t.Errorf("selection = %v", got)
	}
}

func TestRepeatRestoresLastQuery(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.keys(t, "C-s")
	e.typeText(t, "sat")
	e.win.Commit()

	e.cursorAt(0)
	e.keys(t, "C-s", "C-s")

	if got := e.win.Prompt().Text(); got != "sat" {
		t.Errorf("prompt = %q, want the last committed query", got)
	}
	if got := e.session().Focus().Span; got != cursor.NewSpan(8, 11) {
		t.Errorf("focus = %v", got)
	}
}

func TestMovementInPromptReplays(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.cursorAt(0)
	e.keys(t, "C-SPC", "C-s")
	e.typeText(t, "cat")

	e.keys(t, "C-f")

	if e.session().IsOpen() {
		t.Fatal("movement should close the search")
	}
	if e.session().LastCommittedQuery() != "cat" {
		t.Errorf("last committed = %q", e.session().LastCommittedQuery())
	}
	if got := e.selection(t); got != cursor.NewSpan(0, 8) {
		t.Errorf("selection = %v, want the region extended past the match", got)
	}
}

func TestMovementInPromptIsConsumed(t *testing.T) {
	e := newEnv(t, "the cat sat")
	if err := e.app.StartIncrementalSearch(e.win, search.Forward); err != nil {
		t.Fatal(err)
	}
	e.win.Prompt().Type("cat")

	r := e.app.Dispatch(e.win, true, input.MoveTo(input.ToLineEnd))
	if r.Status != handler.StatusConsumed {
		t.Errorf("status = %v, want consumed", r.Status)
	}
	if got := e.selection(t); got != cursor.NewCursorSpan(11) {
		t.Errorf("selection = %v", got)
	}
}

func TestCancelInPrompt(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.keys(t, "C-s")
	e.typeText(t, "sat")
	e.keys(t, "C-g")

	if e.session().IsOpen() {
		t.Fatal("C-g should cancel the search")
	}
	if e.session().LastCommittedQuery() != "" {
		t.Errorf("cancel committed %q", e.session().LastCommittedQuery())
	}
	if e.view.Status(isearch.DefaultStatusKey) != "" {
		t.Error("status not cleared")
	}
}

func TestStartAndRepeat(t *testing.T) {
	e := newEnv(t, "the cat sat")

	if err := e.app.RepeatIncrementalSearch(e.win, search.Backward); err != nil {
		t.Fatal(err)
	}
	if !e.session().IsOpen() || e.session().Direction() != search.Backward {
		t.Fatal("repeat with no session should open one")
	}

	if err := e.app.StartIncrementalSearch(e.win, search.Forward); err != nil {
		t.Fatal(err)
	}
	if !e.session().IsOpen() || !e.win.InPrompt() {
		t.Error("start on an open session should keep it open and focused")
	}
	if e.session().Direction() != search.Backward {
		t.Error("start on an open session should not restart it")
	}
}

func TestFocusChangeClosesSearch(t *testing.T) {
	e := newEnv(t, "the cat sat")
	other := e.win.NewView("other text")
	e.win.FocusView(e.view)
	e.keys(t, "C-s")

	e.win.FocusView(other)

	if e.session().IsOpen() {
		t.Error("moving focus to another view should close the search")
	}
}

func TestDeactivationClosesSearch(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.keys(t, "C-s")
	e.typeText(t, "cat")

	e.win.Blur()

	if e.session().IsOpen() {
		t.Error("losing focus should close the search")
	}
}

func TestSplitSelectionClosesSearch(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.keys(t, "C-s")
	e.typeText(t, "a")

	e.view.SetSelection([]cursor.Span{cursor.NewCursorSpan(1), cursor.NewCursorSpan(9)})

	if e.session().IsOpen() || e.win.Prompt() != nil {
		t.Fatal("a split selection should close the search at once")
	}
	if _, _, ok := e.view.Highlight(isearch.FocusHighlight); ok {
		t.Error("focus highlight left behind")
	}
	if got := e.view.Status(isearch.DefaultStatusKey); got != "" {
		t.Errorf("status = %q, want it erased", got)
	}
}

func TestClosingSearchedViewEndsSearch(t *testing.T) {
	e := newEnv(t, "the cat sat")
	other := e.win.NewView("a tale")
	e.win.FocusView(e.view)
	e.keys(t, "C-s")
	e.typeText(t, "a")

	e.win.CloseView(e.view.ID())

	if e.session().IsOpen() || e.win.Prompt() != nil {
		t.Fatal("search still open on a closed view")
	}
	if _, ok := e.app.marks.Lookup(e.view.ID()); ok {
		t.Error("mark state of the closed view kept")
	}

	e.typeText(t, "t")

	if _, ok := e.app.marks.Lookup(e.view.ID()); ok {
		t.Error("typing brought back the mark state of the closed view")
	}
	if other.Text() != "ta tale" {
		t.Errorf("other view text = %q", other.Text())
	}
}

func TestClosingForgetsState(t *testing.T) {
	e := newEnv(t, "the cat sat")
	e.keys(t, "C-SPC", "C-s")
	e.typeText(t, "sat")

	e.host.CloseWindow(e.win.ID())

	if n := e.app.marks.Len(); n != 0 {
		t.Errorf("%d mark states left", n)
	}
	if n := e.app.searches.Len(); n != 0 {
		t.Errorf("%d sessions left", n)
	}
}

func TestApplyConfig(t *testing.T) {
	e := newEnv(t, "the cat sat")

	cfg := config.Default()
	cfg.Mark.RingSize = 1
	cfg.ISearch.StatusKey = "find"
	cfg.Keys = map[string]string{"C-c m": "set_mark"}
	cfg.Dispatch.EnableMetrics = true
	if err := e.app.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	e.cursorAt(3)
	e.keys(t, "C-c", "m")
	if !e.marks().IsMarkActive() {
		t.Fatal("configured binding did not set the mark")
	}
	e.keys(t, "C-g")
	e.cursorAt(6)
	e.keys(t, "C-c", "m")
	if n := e.marks().Ring().Len(); n != 1 {
		t.Errorf("ring holds %d entries, want 1", n)
	}

	e.keys(t, "C-s")
	e.typeText(t, "at")
	if got := e.view.Status("find"); got == "" {
		t.Error("status not written to the configured slot")
	}

	stats := e.app.Dispatcher().Metrics().ActionStats(input.CmdSetMark)
	if stats == nil || stats.DispatchCount != 2 {
		t.Errorf("set_mark stats = %+v", stats)
	}
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	e := newEnv(t, "the cat")

	bad := config.Default()
	bad.Mark.RingSize = 0
	err := e.app.ApplyConfig(bad)
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Fatalf("error = %v", err)
	}
	if e.app.Config().Mark.RingSize != config.Default().Mark.RingSize {
		t.Error("invalid configuration was applied")
	}

	bad = config.Default()
	bad.Keys = map[string]string{"C-c": "no_such_action"}
	if err := e.app.ApplyConfig(bad); err == nil {
		t.Error("unknown action in keys accepted")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Commands.Movement = nil
	if _, err := New(memhost.New(), cfg); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("error = %v", err)
	}
}
