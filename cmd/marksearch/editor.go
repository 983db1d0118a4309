package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/marksearch/internal/app"
	"github.com/dshills/marksearch/internal/config"
	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host/memhost"
	"github.com/dshills/marksearch/internal/input/key"
	"github.com/dshills/marksearch/internal/input/keymap"
)

// Screen styles.
var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleFound     = tcell.StyleDefault.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack)
	styleOutline   = tcell.StyleDefault.Underline(true).Bold(true)
	styleStatus    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleMessage   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// editor draws one memhost window on a terminal screen and feeds it keys.
type editor struct {
	screen tcell.Screen
	app    *app.App
	host   *memhost.Host
	win    *memhost.Window

	top     int
	message string
	quit    bool
}

func newEditor(screen tcell.Screen, a *app.App, h *memhost.Host, w *memhost.Window) *editor {
	return &editor{screen: screen, app: a, host: h, win: w}
}

// run polls the screen until C-q. Interrupt events carry reloaded
// configurations or reload errors.
func (e *editor) run() {
	e.draw()
	for !e.quit {
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventInterrupt:
			e.handleInterrupt(ev.Data())
		case *tcell.EventResize:
			e.screen.Sync()
		}
		e.draw()
	}
}

func (e *editor) handleInterrupt(data any) {
	switch v := data.(type) {
	case config.Config:
		if err := e.app.ApplyConfig(v); err != nil {
			e.message = err.Error()
			return
		}
		e.message = "configuration reloaded"
	case error:
		e.message = v.Error()
	}
}

func (e *editor) handleKey(tev *tcell.EventKey) {
	if tev.Key() == tcell.KeyCtrlQ {
		e.quit = true
		return
	}
	ev, ok := key.FromTcell(tev)
	if !ok {
		return
	}
	e.message = ""

	inPrompt := e.win.InPrompt()
	status, err := e.app.HandleKey(e.win, inPrompt, ev)
	if err != nil {
		e.message = err.Error()
		return
	}
	if status != keymap.StatusUnbound || !inPrompt {
		return
	}
	switch {
	case ev.IsEnter():
		e.win.Commit()
	case ev.IsEscape():
		e.win.HidePrompt()
	}
}

func (e *editor) draw() {
	e.screen.Clear()
	width, height := e.screen.Size()
	if height < 3 {
		e.screen.Show()
		return
	}
	rows := height - 2

	v := e.win.Active()
	if v != nil {
		e.drawView(v, width, rows)
	}
	e.drawStatus(v, width, rows)
	e.drawBottom(width, rows+1)
	e.screen.Show()
}

func (e *editor) drawView(v *memhost.View, width, rows int) {
	text := v.Text()
	sel := v.Selection()
	head := 0
	if len(sel) > 0 {
		head = sel[0].Cursor()
	}

	headLine := strings.Count(text[:min(head, len(text))], "\n")
	if headLine < e.top {
		e.top = headLine
	} else if headLine >= e.top+rows {
		e.top = headLine - rows + 1
	}

	line, col := 0, 0
	for off := 0; off <= len(text); {
		if off == head && !e.win.InPrompt() && line >= e.top && line < e.top+rows {
			e.screen.ShowCursor(col, line-e.top)
		}
		if off == len(text) {
			break
		}
		r, size := utf8.DecodeRuneInString(text[off:])
		if r == '\n' {
			line++
			col = 0
			off += size
			continue
		}
		if line >= e.top && line < e.top+rows && col < width {
			e.screen.SetContent(col, line-e.top, r, nil, e.styleAt(v, sel, off))
		}
		col++
		off += size
	}
}

func (e *editor) styleAt(v *memhost.View, sel []cursor.Span, off int) tcell.Style {
	for _, s := range sel {
		if s.Contains(off) {
			return styleSelection
		}
	}
	style := styleText
	for _, name := range v.HighlightsAt(off) {
		_, hs, ok := v.Highlight(name)
		if !ok {
			continue
		}
		if hs.Outline {
			return styleOutline
		}
		style = styleFound
	}
	return style
}

func (e *editor) drawStatus(v *memhost.View, width, y int) {
	var parts []string
	if v != nil {
		if off, ok := e.app.Marks(v).Mark(); ok {
			parts = append(parts, fmt.Sprintf("mark %d", off))
		}
		if s := v.Status(e.app.Config().ISearch.StatusKey); s != "" {
			parts = append(parts, s)
		}
	}
	if p := e.app.PendingKeys(); p != "" {
		parts = append(parts, p+"-")
	}
	line := " marksearch  " + strings.Join(parts, "  ")
	e.fill(0, y, width, line, styleStatus)
}

func (e *editor) drawBottom(width, y int) {
	if p := e.win.Prompt(); p != nil {
		line := p.Caption() + p.Text()
		e.fill(0, y, width, line, styleText)
		if e.win.InPrompt() {
			e.screen.ShowCursor(utf8.RuneCountInString(line), y)
		}
		return
	}
	e.fill(0, y, width, e.message, styleMessage)
}

// fill writes s at row y and pads the rest of the row with style.
func (e *editor) fill(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		e.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		e.screen.SetContent(x, y, ' ', nil, style)
	}
}
