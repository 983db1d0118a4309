// Package memhost is an in-memory host. It keeps text in a string, offsets
// are byte offsets, and every notification is delivered synchronously on the
// caller's goroutine. Tests and scripts drive it in place of a real editor.
package memhost

import (
	"github.com/google/uuid"

	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

// Host owns windows and the shared clipboard.
type Host struct {
	listener  host.Listener
	windows   map[host.WindowID]*Window
	clipboard string
}

// New creates an empty host.
func New() *Host {
	return &Host{windows: make(map[host.WindowID]*Window)}
}

// SetListener installs the receiver of change notifications.
func (h *Host) SetListener(l host.Listener) {
	h.listener = l
}

// Clipboard returns the text of the last copy.
func (h *Host) Clipboard() string {
	return h.clipboard
}

// NewWindow opens a window with one view holding text.
func (h *Host) NewWindow(text string) *Window {
	w := &Window{id: host.WindowID(newID()), host: h}
	w.NewView(text)
	h.windows[w.id] = w
	return w
}

// Window returns a window by id.
func (h *Host) Window(id host.WindowID) (*Window, bool) {
	w, ok := h.windows[id]
	return w, ok
}

// CloseWindow closes a window and all of its views.
func (h *Host) CloseWindow(id host.WindowID) {
	w, ok := h.windows[id]
	if !ok {
		return
	}
	for len(w.views) > 0 {
		w.CloseView(w.views[0].id)
	}
	delete(h.windows, id)
	if h.listener != nil {
		h.listener.OnWindowClosed(id)
	}
}

// Execute runs action against v, or against the prompt of w.
func (h *Host) Execute(w host.Window, v host.View, inPrompt bool, action input.Action) error {
	if inPrompt {
		win, ok := w.(*Window)
		if !ok {
			return host.ErrUnknownCommand
		}
		return win.executeInPrompt(action)
	}
	view, ok := v.(*View)
	if !ok {
		return host.ErrUnknownCommand
	}
	for i := 0; i < action.Times(); i++ {
		if err := h.executeInView(view, action); err != nil {
			return err
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func (h *Host) notifyModified(v *View) {
	if h.listener != nil {
		h.listener.OnModified(v)
	}
}

func (h *Host) notifySelection(v *View) {
	if h.listener != nil {
		h.listener.OnSelectionModified(v)
	}
}

var (
	_ host.Executor = (*Host)(nil)
	_ host.Window   = (*Window)(nil)
	_ host.View     = (*View)(nil)
	_ host.Prompt   = (*Prompt)(nil)
)
