package memhost

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
)

// View is an in-memory buffer view.
type View struct {
	id     host.ViewID
	host   *Host
	window *Window

	text   string
	sel    *cursor.Selection
	shown  cursor.Span
	status map[string]string
	hl     *highlightStore
}

func newView(w *Window, text string) *View {
	return &View{
		id:     host.ViewID(newID()),
		host:   w.host,
		window: w,
		text:   text,
		sel:    cursor.NewSelectionAt(0),
		status: make(map[string]string),
		hl:     newHighlightStore(),
	}
}

// ID returns the view identity.
func (v *View) ID() host.ViewID { return v.id }

// Window returns the window holding the view.
func (v *View) Window() *Window { return v.window }

// Text returns the buffer contents.
func (v *View) Text() string { return v.text }

// Len returns the buffer length in bytes.
func (v *View) Len() int { return len(v.text) }

// Selection returns a copy of the live selection.
func (v *View) Selection() []cursor.Span {
	return v.sel.All()
}

// SetSelection replaces the selection and notifies the listener if it
// changed.
func (v *View) SetSelection(spans []cursor.Span) {
	next := cursor.NewSelectionFromSlice(spans)
	next.Clamp(len(v.text))
	if next.Equals(v.sel) {
		return
	}
	v.sel = next
	v.host.notifySelection(v)
}

// LineSpan returns the span of the full lines touched by s.
func (v *View) LineSpan(s cursor.Span) cursor.Span {
	return cursor.NewSpan(v.lineStart(s.Begin()), v.lineEnd(s.End()))
}

// FindAll returns the literal matches of query. Matching folds case unless
// caseSensitive is set.
func (v *View) FindAll(query string, caseSensitive bool) []cursor.Span {
	if query == "" {
		return nil
	}
	var found []cursor.Span
	n := len(query)
	for i := 0; i+n <= len(v.text); {
		chunk := v.text[i : i+n]
		if chunk == query || (!caseSensitive && strings.EqualFold(chunk, query)) {
			found = append(found, cursor.NewSpan(i, i+n))
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(v.text[i:])
		i += size
	}
	return found
}

// Show records s as the region last scrolled into view.
func (v *View) Show(s cursor.Span) {
	v.shown = s
}

// Shown returns the region last scrolled into view.
func (v *View) Shown() cursor.Span {
	return v.shown
}

// AddHighlight registers spans under name.
func (v *View) AddHighlight(name string, spans []cursor.Span, style host.Style) {
	v.hl.add(name, spans, style)
}

// RemoveHighlight removes the highlight registered under name.
func (v *View) RemoveHighlight(name string) {
	v.hl.remove(name)
}

// Highlight returns the spans and style registered under name.
func (v *View) Highlight(name string) ([]cursor.Span, host.Style, bool) {
	return v.hl.get(name)
}

// HighlightsAt returns the sorted names of highlights covering offset.
func (v *View) HighlightsAt(offset int) []string {
	return v.hl.at(offset)
}

// SetStatus shows text in the status slot key.
func (v *View) SetStatus(key, text string) {
	v.status[key] = text
}

// EraseStatus clears the status slot key.
func (v *View) EraseStatus(key string) {
	delete(v.status, key)
}

// Status returns the text of the status slot key.
func (v *View) Status(key string) string {
	return v.status[key]
}

func (v *View) lineStart(offset int) int {
	offset = clamp(offset, len(v.text))
	return strings.LastIndexByte(v.text[:offset], '\n') + 1
}

func (v *View) lineEnd(offset int) int {
	offset = clamp(offset, len(v.text))
	if i := strings.IndexByte(v.text[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(v.text)
}

// replace applies non-overlapping edits sorted by Start and notifies the
// listener. The selection is mapped through the edits unless after is given.
func (v *View) replace(edits []cursor.Edit, after []cursor.Span) {
	if len(edits) == 0 {
		return
	}
	var b strings.Builder
	prev := 0
	for _, e := range edits {
		b.WriteString(v.text[prev:e.Start])
		b.WriteString(e.Text)
		prev = e.End
	}
	b.WriteString(v.text[prev:])
	v.text = b.String()

	before := v.sel.Clone()
	if after != nil {
		v.sel.SetAll(after)
	} else {
		for i := len(edits) - 1; i >= 0; i-- {
			cursor.TransformSelection(v.sel, edits[i])
		}
	}
	v.sel.Clamp(len(v.text))

	v.host.notifyModified(v)
	if !before.Equals(v.sel) {
		v.host.notifySelection(v)
	}
}

func clamp(offset, maxOffset int) int {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
