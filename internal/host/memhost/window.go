package memhost

import (
	"github.com/dshills/marksearch/internal/host"
)

// Window holds views and at most one prompt.
type Window struct {
	id     host.WindowID
	host   *Host
	views  []*View
	active *View

	prompt        *Prompt
	promptFocused bool

	// RefusePrompt makes ShowPrompt fail.
	RefusePrompt bool
}

// ID returns the window identity.
func (w *Window) ID() host.WindowID { return w.id }

// ActiveView returns the focused view.
func (w *Window) ActiveView() host.View {
	if w.active == nil {
		return nil
	}
	return w.active
}

// Active returns the focused view.
func (w *Window) Active() *View { return w.active }

// Views returns the views in open order.
func (w *Window) Views() []*View {
	out := make([]*View, len(w.views))
	copy(out, w.views)
	return out
}

// NewView opens a view holding text and focuses it.
func (w *Window) NewView(text string) *View {
	v := newView(w, text)
	w.views = append(w.views, v)
	w.active = v
	return v
}

// FocusView makes v the active view. Focus leaves the prompt.
func (w *Window) FocusView(v *View) {
	w.active = v
	w.Blur()
}

// CloseView closes a view.
func (w *Window) CloseView(id host.ViewID) {
	for i, v := range w.views {
		if v.id != id {
			continue
		}
		w.views = append(w.views[:i], w.views[i+1:]...)
		if w.active == v {
			w.active = nil
			if len(w.views) > 0 {
				w.active = w.views[len(w.views)-1]
			}
		}
		if w.host.listener != nil {
			w.host.listener.OnViewClosed(id)
		}
		return
	}
}

// ShowPrompt opens the prompt or returns the open one.
func (w *Window) ShowPrompt(caption, initial string, h host.PromptHandler) host.Prompt {
	if w.RefusePrompt {
		return nil
	}
	if w.prompt != nil && w.prompt.showing {
		return w.prompt
	}
	w.prompt = &Prompt{caption: caption, text: initial, handler: h, showing: true}
	return w.prompt
}

// HidePrompt closes the prompt and fires its cancel callback.
func (w *Window) HidePrompt() {
	p := w.prompt
	if p == nil || !p.showing {
		return
	}
	p.showing = false
	w.promptFocused = false
	if p.handler.OnCancel != nil {
		p.handler.OnCancel()
	}
}

// FocusPrompt gives keyboard focus to the prompt.
func (w *Window) FocusPrompt() {
	if w.prompt != nil && w.prompt.showing {
		w.promptFocused = true
	}
}

// Prompt returns the open prompt, or nil.
func (w *Window) Prompt() *Prompt {
	if w.prompt == nil || !w.prompt.showing {
		return nil
	}
	return w.prompt
}

// InPrompt reports whether keyboard focus is in the prompt.
func (w *Window) InPrompt() bool {
	return w.promptFocused && w.prompt != nil && w.prompt.showing
}

// Commit closes the prompt as if Enter was pressed.
func (w *Window) Commit() {
	p := w.prompt
	if p == nil || !p.showing {
		return
	}
	p.showing = false
	w.promptFocused = false
	if p.handler.OnDone != nil {
		p.handler.OnDone(p.text)
	}
}

// Blur moves focus out of the prompt without closing it and reports the
// deactivation.
func (w *Window) Blur() {
	if !w.InPrompt() {
		return
	}
	w.promptFocused = false
	if w.host.listener != nil {
		w.host.listener.OnDeactivated(w)
	}
}
