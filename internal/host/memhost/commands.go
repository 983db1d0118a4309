package memhost

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

func (h *Host) executeInView(v *View, action input.Action) error {
	args := action.Args
	switch action.Name {
	case input.CmdMove:
		return v.move(args.By, args.Forward, args.Extend)
	case input.CmdMoveTo:
		return v.moveTo(args.To, args.Extend)
	case input.CmdInsert:
		v.insert(args.Text)
	case input.CmdDeleteLeft:
		v.deleteLeft()
	case input.CmdIndent:
		v.indent()
	case input.CmdUnindent:
		v.unindent()
	case input.CmdSwapLineUp:
		v.swapLine(false)
	case input.CmdSwapLineDown:
		v.swapLine(true)
	case input.CmdCopy:
		h.clipboard = v.copyText()
	default:
		return fmt.Errorf("%w: %s", host.ErrUnknownCommand, action.Name)
	}
	return nil
}

func (v *View) move(by input.Unit, forward, extend bool) error {
	var step func(int) int
	switch by {
	case input.ByCharacters:
		step = func(o int) int { return v.charStep(o, forward) }
	case input.ByWords:
		step = func(o int) int { return v.wordStep(o, forward) }
	case input.ByLines:
		step = func(o int) int { return v.lineStep(o, forward) }
	default:
		return fmt.Errorf("%w: move by %q", host.ErrUnknownCommand, by)
	}
	spans := v.sel.All()
	for i, s := range spans {
		switch {
		case extend:
			spans[i] = cursor.NewSpan(s.Anchor, step(s.Head))
		case !s.IsEmpty() && by == input.ByCharacters:
			if forward {
				spans[i] = cursor.NewCursorSpan(s.End())
			} else {
				spans[i] = cursor.NewCursorSpan(s.Begin())
			}
		default:
			spans[i] = cursor.NewCursorSpan(step(s.Head))
		}
	}
	v.SetSelection(spans)
	return nil
}

func (v *View) moveTo(to input.Destination, extend bool) error {
	var dest func(int) int
	switch to {
	case input.ToLineStart:
		dest = v.lineStart
	case input.ToLineEnd:
		dest = v.lineEnd
	case input.ToBufStart:
		dest = func(int) int { return 0 }
	case input.ToBufEnd:
		dest = func(int) int { return len(v.text) }
	default:
		return fmt.Errorf("%w: move_to %q", host.ErrUnknownCommand, to)
	}
	spans := v.sel.All()
	for i, s := range spans {
		if extend {
			spans[i] = cursor.NewSpan(s.Anchor, dest(s.Head))
		} else {
			spans[i] = cursor.NewCursorSpan(dest(s.Head))
		}
	}
	v.SetSelection(spans)
	return nil
}

func (v *View) charStep(o int, forward bool) int {
	if forward {
		if o >= len(v.text) {
			return len(v.text)
		}
		_, size := utf8.DecodeRuneInString(v.text[o:])
		return o + size
	}
	if o <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(v.text[:o])
	return o - size
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordStep skips non-word characters and then a run of word characters.
func (v *View) wordStep(o int, forward bool) int {
	at := func(o int) (rune, bool) {
		if forward {
			if o >= len(v.text) {
				return 0, false
			}
			r, _ := utf8.DecodeRuneInString(v.text[o:])
			return r, true
		}
		if o <= 0 {
			return 0, false
		}
		r, _ := utf8.DecodeLastRuneInString(v.text[:o])
		return r, true
	}
	for r, ok := at(o); ok && !isWordRune(r); r, ok = at(o) {
		o = v.charStep(o, forward)
	}
	for r, ok := at(o); ok && isWordRune(r); r, ok = at(o) {
		o = v.charStep(o, forward)
	}
	return o
}

// lineStep moves to the adjacent line, keeping the byte column where the
// line is long enough.
func (v *View) lineStep(o int, forward bool) int {
	start := v.lineStart(o)
	col := o - start
	var target int
	if forward {
		end := v.lineEnd(o)
		if end >= len(v.text) {
			return len(v.text)
		}
		target = end + 1
	} else {
		if start == 0 {
			return 0
		}
		target = v.lineStart(start - 1)
	}
	return min(target+col, v.lineEnd(target))
}

func (v *View) insert(text string) {
	spans := v.sel.All()
	edits := make([]cursor.Edit, len(spans))
	after := make([]cursor.Span, len(spans))
	delta := 0
	for i, s := range spans {
		edits[i] = cursor.Edit{Start: s.Begin(), End: s.End(), Text: text}
		after[i] = cursor.NewCursorSpan(s.Begin() + delta + len(text))
		delta += edits[i].Delta()
	}
	v.replace(edits, after)
}

func (v *View) deleteLeft() {
	spans := v.sel.All()
	var edits []cursor.Edit
	after := make([]cursor.Span, 0, len(spans))
	delta := 0
	for _, s := range spans {
		e := cursor.Edit{Start: s.Begin(), End: s.End()}
		if s.IsEmpty() {
			e.Start = v.charStep(s.Head, false)
		}
		after = append(after, cursor.NewCursorSpan(e.Start+delta))
		if e.Start == e.End {
			continue
		}
		edits = append(edits, e)
		delta += e.Delta()
	}
	if len(edits) == 0 {
		return
	}
	v.replace(edits, after)
}

// selectedLineStarts returns the distinct line starts touched by the
// selection, ascending.
func (v *View) selectedLineStarts() []int {
	var starts []int
	last := -1
	for _, s := range v.sel.All() {
		lines := v.LineSpan(s)
		for o := lines.Begin(); o <= lines.End(); {
			if o > last {
				starts = append(starts, o)
				last = o
			}
			next := v.lineEnd(o) + 1
			if next > lines.End() {
				break
			}
			o = next
		}
	}
	return starts
}

func (v *View) indent() {
	starts := v.selectedLineStarts()
	edits := make([]cursor.Edit, len(starts))
	for i, o := range starts {
		edits[i] = cursor.Edit{Start: o, End: o, Text: "\t"}
	}
	v.replace(edits, nil)
}

func (v *View) unindent() {
	var edits []cursor.Edit
	for _, o := range v.selectedLineStarts() {
		switch {
		case strings.HasPrefix(v.text[o:], "\t"):
			edits = append(edits, cursor.Edit{Start: o, End: o + 1})
		case strings.HasPrefix(v.text[o:], "    "):
			edits = append(edits, cursor.Edit{Start: o, End: o + 4})
		}
	}
	v.replace(edits, nil)
}

// swapLine moves the lines of the primary span past the neighbouring line.
func (v *View) swapLine(down bool) {
	primary, ok := v.sel.Primary()
	if !ok {
		return
	}
	block := v.LineSpan(primary)
	var other cursor.Span
	if down {
		if block.End() >= len(v.text) {
			return
		}
		other = cursor.NewSpan(block.End()+1, v.lineEnd(block.End()+1))
	} else {
		if block.Begin() == 0 {
			return
		}
		other = cursor.NewSpan(v.lineStart(block.Begin()-1), block.Begin()-1)
	}
	blockText := v.text[block.Begin():block.End()]
	otherText := v.text[other.Begin():other.End()]

	var edit cursor.Edit
	var shift int
	if down {
		edit = cursor.Edit{Start: block.Begin(), End: other.End(), Text: otherText + "\n" + blockText}
		shift = len(otherText) + 1
	} else {
		edit = cursor.Edit{Start: other.Begin(), End: block.End(), Text: blockText + "\n" + otherText}
		shift = -(len(otherText) + 1)
	}
	after := []cursor.Span{cursor.NewSpan(primary.Anchor+shift, primary.Head+shift)}
	v.replace([]cursor.Edit{edit}, after)
}

func (v *View) copyText() string {
	var parts []string
	for _, s := range v.sel.All() {
		if !s.IsEmpty() {
			parts = append(parts, v.text[s.Begin():s.End()])
		}
	}
	return strings.Join(parts, "\n")
}
