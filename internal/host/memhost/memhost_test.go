package memhost

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

type recorder struct {
	events []string
}

func (r *recorder) OnModified(host.View)          { r.events = append(r.events, "modified") }
func (r *recorder) OnSelectionModified(host.View) { r.events = append(r.events, "selection") }
func (r *recorder) OnDeactivated(host.Window)     { r.events = append(r.events, "deactivated") }
func (r *recorder) OnViewClosed(host.ViewID)      { r.events = append(r.events, "view-closed") }
func (r *recorder) OnWindowClosed(host.WindowID)  { r.events = append(r.events, "window-closed") }

func setup(text string) (*Host, *Window, *View) {
	h := New()
	w := h.NewWindow(text)
	return h, w, w.Active()
}

func run(t *testing.T, h *Host, w *Window, a input.Action) {
	t.Helper()
	if err := h.Execute(w, w.Active(), false, a); err != nil {
		t.Fatalf("Execute(%s): %v", a, err)
	}
}

func TestFindAllSmartCase(t *testing.T) {
	_, _, v := setup("the cat sat; CAT and Cat")

	tests := []struct {
		query         string
		caseSensitive bool
		want          []cursor.Span
	}{
		{"cat", false, []cursor.Span{{Anchor: 4, Head: 7}, {Anchor: 13, Head: 16}, {Anchor: 21, Head: 24}}},
		{"Cat", true, []cursor.Span{{Anchor: 21, Head: 24}}},
		{"dog", false, nil},
		{"", false, nil},
	}

	for _, tt := range tests {
		got := v.FindAll(tt.query, tt.caseSensitive)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindAll(%q, %v) = %v, want %v", tt.query, tt.caseSensitive, got, tt.want)
		}
	}
}

func TestFindAllNonOverlapping(t *testing.T) {
	_, _, v := setup("aaaa")

	got := v.FindAll("aa", false)
	want := []cursor.Span{{Anchor: 0, Head: 2}, {Anchor: 2, Head: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll = %v, want %v", got, want)
	}
}

func TestLineSpan(t *testing.T) {
	_, _, v := setup("one\ntwo words\nthree")

	tests := []struct {
		in   cursor.Span
		want cursor.Span
	}{
		{cursor.NewSpan(5, 7), cursor.NewSpan(4, 13)},
		{cursor.NewSpan(7, 5), cursor.NewSpan(4, 13)},
		{cursor.NewSpan(1, 6), cursor.NewSpan(0, 13)},
		{cursor.NewCursorSpan(16), cursor.NewSpan(14, 19)},
	}

	for _, tt := range tests {
		if got := v.LineSpan(tt.in); got != tt.want {
			t.Errorf("LineSpan(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMove(t *testing.T) {
	h, w, v := setup("ab cd\nefghij\nk")

	run(t, h, w, input.Move(input.ByCharacters, true))
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(1) {
		t.Fatalf("after move right: %v", got)
	}

	run(t, h, w, input.Move(input.ByCharacters, true).WithExtend(true))
	if got := v.Selection()[0]; got != cursor.NewSpan(1, 2) {
		t.Fatalf("after extend right: %v", got)
	}

	run(t, h, w, input.Move(input.ByLines, true))
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(8) {
		t.Fatalf("after move down: %v", got)
	}

	run(t, h, w, input.Move(input.ByLines, true))
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(14) {
		t.Fatalf("after move down to short line: %v", got)
	}

	run(t, h, w, input.MoveTo(input.ToBufStart))
	run(t, h, w, input.Move(input.ByWords, true))
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(2) {
		t.Fatalf("after word right: %v", got)
	}

	run(t, h, w, input.MoveTo(input.ToLineEnd).WithExtend(true))
	if got := v.Selection()[0]; got != cursor.NewSpan(2, 5) {
		t.Fatalf("after extend to eol: %v", got)
	}
}

func TestMoveUnknownUnit(t *testing.T) {
	h, w, _ := setup("abc")

	err := h.Execute(w, w.Active(), false, input.Move(input.ByPages, true))
	if !errors.Is(err, host.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	h, w, v := setup("hello world")
	v.SetSelection([]cursor.Span{cursor.NewSpan(6, 11)})

	run(t, h, w, input.Insert("there"))

	if v.Text() != "hello there" {
		t.Errorf("text = %q", v.Text())
	}
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(11) {
		t.Errorf("selection = %v", got)
	}
}

func TestInsertMultipleCursors(t *testing.T) {
	h, w, v := setup("ab")
	v.SetSelection([]cursor.Span{cursor.NewCursorSpan(0), cursor.NewCursorSpan(2)})

	run(t, h, w, input.Insert("-"))

	if v.Text() != "-ab-" {
		t.Errorf("text = %q", v.Text())
	}
	want := []cursor.Span{cursor.NewCursorSpan(1), cursor.NewCursorSpan(4)}
	if got := v.Selection(); !reflect.DeepEqual(got, want) {
		t.Errorf("selection = %v, want %v", got, want)
	}
}

func TestDeleteLeft(t *testing.T) {
	h, w, v := setup("abc")
	v.SetSelection([]cursor.Span{cursor.NewCursorSpan(2)})

	run(t, h, w, input.NewAction(input.CmdDeleteLeft))

	if v.Text() != "ac" {
		t.Errorf("text = %q", v.Text())
	}
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(1) {
		t.Errorf("selection = %v", got)
	}
}

func TestIndentShiftsSelection(t *testing.T) {
	h, w, v := setup("one\ntwo\nthree")
	v.SetSelection([]cursor.Span{cursor.NewSpan(1, 5)})

	run(t, h, w, input.NewAction(input.CmdIndent))

	if v.Text() != "\tone\n\ttwo\nthree" {
		t.Errorf("text = %q", v.Text())
	}
	if got := v.Selection()[0]; got != cursor.NewSpan(2, 7) {
		t.Errorf("selection = %v", got)
	}

	run(t, h, w, input.NewAction(input.CmdUnindent))

	if v.Text() != "one\ntwo\nthree" {
		t.Errorf("text after unindent = %q", v.Text())
	}
}

func TestSwapLine(t *testing.T) {
	h, w, v := setup("aa\nbb\ncc")
	v.SetSelection([]cursor.Span{cursor.NewCursorSpan(4)})

	run(t, h, w, input.NewAction(input.CmdSwapLineUp))
	if v.Text() != "bb\naa\ncc" {
		t.Fatalf("after swap up: %q", v.Text())
	}
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(1) {
		t.Fatalf("selection after swap up = %v", got)
	}

	run(t, h, w, input.NewAction(input.CmdSwapLineDown))
	run(t, h, w, input.NewAction(input.CmdSwapLineDown))
	if v.Text() != "aa\ncc\nbb" {
		t.Fatalf("after swap down twice: %q", v.Text())
	}
	if got := v.Selection()[0]; got != cursor.NewCursorSpan(7) {
		t.Errorf("selection after swap down = %v", got)
	}
}

func TestCopy(t *testing.T) {
	h, w, v := setup("hello world")
	v.SetSelection([]cursor.Span{cursor.NewSpan(11, 6)})

	run(t, h, w, input.NewAction(input.CmdCopy))

	if h.Clipboard() != "world" {
		t.Errorf("clipboard = %q", h.Clipboard())
	}
	if got := v.Selection()[0]; got != cursor.NewSpan(11, 6) {
		t.Errorf("copy changed selection: %v", got)
	}
}

func TestNotificationOrder(t *testing.T) {
	h, w, v := setup("abc")
	rec := &recorder{}
	h.SetListener(rec)

	v.SetSelection([]cursor.Span{cursor.NewCursorSpan(0)})
	if len(rec.events) != 0 {
		t.Fatalf("unchanged selection notified: %v", rec.events)
	}

	run(t, h, w, input.Insert("x"))
	want := []string{"modified", "selection"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestPromptCallbacks(t *testing.T) {
	h, w, _ := setup("abc")
	rec := &recorder{}
	h.SetListener(rec)

	var changes []string
	var done string
	cancelled := 0
	p := w.ShowPrompt("Find:", "", host.PromptHandler{
		OnChange: func(s string) { changes = append(changes, s) },
		OnDone:   func(s string) { done = s },
		OnCancel: func() { cancelled++ },
	})
	w.FocusPrompt()

	if again := w.ShowPrompt("Find:", "", host.PromptHandler{}); again != p {
		t.Error("ShowPrompt should return the open prompt")
	}

	if err := h.Execute(w, w.Active(), true, input.Insert("ab")); err != nil {
		t.Fatal(err)
	}
	if err := h.Execute(w, w.Active(), true, input.NewAction(input.CmdDeleteLeft)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(changes, []string{"ab", "a"}) {
		t.Errorf("changes = %v", changes)
	}

	w.Blur()
	if !reflect.DeepEqual(rec.events, []string{"deactivated"}) {
		t.Errorf("events = %v", rec.events)
	}

	w.Commit()
	if done != "a" || cancelled != 0 {
		t.Errorf("done = %q, cancelled = %d", done, cancelled)
	}

	w.ShowPrompt("Find:", "", host.PromptHandler{OnCancel: func() { cancelled++ }})
	w.HidePrompt()
	w.HidePrompt()
	if cancelled != 1 {
		t.Errorf("cancelled = %d, want 1", cancelled)
	}
}

func TestRefusePrompt(t *testing.T) {
	_, w, _ := setup("abc")
	w.RefusePrompt = true

	if p := w.ShowPrompt("Find:", "", host.PromptHandler{}); p != nil {
		t.Errorf("expected nil prompt, got %v", p)
	}
}

func TestHighlights(t *testing.T) {
	_, _, v := setup("the cat sat")
	v.AddHighlight("found", []cursor.Span{{Anchor: 4, Head: 7}, {Anchor: 8, Head: 11}}, host.Style{Scope: "found", Outline: true})
	v.AddHighlight("focus", []cursor.Span{{Anchor: 4, Head: 7}}, host.Style{Scope: "focus"})

	if got := v.HighlightsAt(5); !reflect.DeepEqual(got, []string{"focus", "found"}) {
		t.Errorf("HighlightsAt(5) = %v", got)
	}
	if got := v.HighlightsAt(7); got != nil {
		t.Errorf("HighlightsAt(7) = %v, want none", got)
	}

	v.RemoveHighlight("focus")
	if got := v.HighlightsAt(5); !reflect.DeepEqual(got, []string{"found"}) {
		t.Errorf("HighlightsAt(5) after remove = %v", got)
	}

	spans, style, ok := v.Highlight("found")
	if !ok || len(spans) != 2 || !style.Outline {
		t.Errorf("Highlight(found) = %v, %+v, %v", spans, style, ok)
	}
}

func TestCloseNotifies(t *testing.T) {
	h, w, _ := setup("abc")
	rec := &recorder{}
	h.SetListener(rec)

	w.NewView("second")
	h.CloseWindow(w.ID())

	want := []string{"view-closed", "view-closed", "window-closed"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if _, ok := h.Window(w.ID()); ok {
		t.Error("window still registered")
	}
}
