package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/marksearch/internal/app"
	"github.com/dshills/marksearch/internal/config"
	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host/memhost"
)

func newTestEditor(t *testing.T, text string) (*editor, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 6)

	h := memhost.New()
	a, err := app.New(h, config.Default())
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	h.SetListener(a)
	return newEditor(screen, a, h, h.NewWindow(text)), screen
}

func (e *editor) press(k tcell.Key, r rune, mod tcell.ModMask) {
	e.handleKey(tcell.NewEventKey(k, r, mod))
	e.draw()
}

func (e *editor) typeText(s string) {
	for _, r := range s {
		e.press(tcell.KeyRune, r, tcell.ModNone)
	}
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawText(t *testing.T) {
	e, screen := newTestEditor(t, "the cat\nsat down")
	e.draw()

	tests := []struct {
		y    int
		want string
	}{
		{0, "the cat"},
		{1, "sat down"},
		{2, ""},
	}
	for _, tt := range tests {
		if got := row(screen, tt.y); got != tt.want {
			t.Errorf("row %d = %q, want %q", tt.y, got, tt.want)
		}
	}
	if got := row(screen, 4); !strings.HasPrefix(got, " marksearch") {
		t.Errorf("status row = %q", got)
	}
}

func TestMarkAndSelectionKeys(t *testing.T) {
	e, screen := newTestEditor(t, "the cat")

	e.press(tcell.KeyCtrlSpace, 0, tcell.ModCtrl)
	e.press(tcell.KeyCtrlF, 0, tcell.ModCtrl)
	e.press(tcell.KeyCtrlF, 0, tcell.ModCtrl)

	sel := e.win.Active().Selection()
	if len(sel) != 1 || sel[0] != cursor.NewSpan(0, 2) {
		t.Fatalf("selection = %v", sel)
	}
	cells, _, _ := screen.GetContents()
	if _, _, attrs := cells[0].Style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("selected cell not drawn reversed")
	}
	if got := row(screen, 4); !strings.Contains(got, "mark 0") {
		t.Errorf("status row = %q, want the mark", got)
	}
}

func TestSearchPrompt(t *testing.T) {
	e, screen := newTestEditor(t, "the cat sat")

	e.press(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	if !e.win.InPrompt() {
		t.Fatal("C-s should focus the search prompt")
	}
	e.typeText("sat")
	if got := row(screen, 5); !strings.HasSuffix(got, "sat") {
		t.Errorf("prompt row = %q", got)
	}

	e.press(tcell.KeyEnter, 0, tcell.ModNone)
	if e.win.Prompt() != nil {
		t.Error("RET should close the prompt")
	}
	sel := e.win.Active().Selection()
	if len(sel) != 1 || sel[0] != cursor.NewCursorSpan(11) {
		t.Errorf("selection = %v, want the cursor after the match", sel)
	}
}

func TestEscapeCancelsSearch(t *testing.T) {
	e, _ := newTestEditor(t, "the cat sat")

	e.press(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	e.typeText("cat")
	e.press(tcell.KeyEscape, 0, tcell.ModNone)

	if e.win.Prompt() != nil {
		t.Error("ESC should close the prompt")
	}
	if e.app.Session(e.win).IsOpen() {
		t.Error("search still open")
	}
}

func TestQuitKey(t *testing.T) {
	e, _ := newTestEditor(t, "x")
	e.press(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	if !e.quit {
		t.Error("C-q should quit")
	}
}

func TestInterrupts(t *testing.T) {
	e, _ := newTestEditor(t, "x")

	cfg := config.Default()
	cfg.Mark.RingSize = 3
	e.handleInterrupt(cfg)
	if e.app.Config().Mark.RingSize != 3 || e.message != "configuration reloaded" {
		t.Errorf("ring size %d, message %q", e.app.Config().Mark.RingSize, e.message)
	}

	bad := config.Default()
	bad.Mark.RingSize = -1
	e.handleInterrupt(bad)
	if e.app.Config().Mark.RingSize != 3 || e.message == "" {
		t.Errorf("invalid config applied: ring size %d, message %q", e.app.Config().Mark.RingSize, e.message)
	}

	e.handleInterrupt(errors.New("boom"))
	if e.message != "boom" {
		t.Errorf("message = %q", e.message)
	}
}

func TestWatchConfigLogsToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[mark]\nringSize = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	r, err := watchConfig(path, config.Default(), &logs, config.WithoutEnv())
	if err != nil {
		t.Fatalf("watchConfig: %v", err)
	}
	defer r.Close()

	if err := os.WriteFile(path, []byte("[mark]\nringSize = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-r.Errors():
	case cfg := <-r.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg.Mark)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}

	if !strings.Contains(logs.String(), "config reload failed") {
		t.Errorf("log output = %q, want the reload failure", logs.String())
	}
}
