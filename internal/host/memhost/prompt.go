package memhost

import (
	"unicode/utf8"

	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

// Prompt is a single-line input panel.
type Prompt struct {
	caption string
	text    string
	handler host.PromptHandler
	showing bool
}

// Caption returns the prompt caption.
func (p *Prompt) Caption() string { return p.caption }

// Text returns the prompt text.
func (p *Prompt) Text() string { return p.text }

// IsShowing reports whether the prompt is open.
func (p *Prompt) IsShowing() bool { return p.showing }

// SetText replaces the text and fires the change callback.
func (p *Prompt) SetText(text string) {
	p.text = text
	if p.handler.OnChange != nil {
		p.handler.OnChange(text)
	}
}

// Type appends s as if typed.
func (p *Prompt) Type(s string) {
	p.SetText(p.text + s)
}

// Backspace removes the last character.
func (p *Prompt) Backspace() {
	if p.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(p.text)
	p.SetText(p.text[:len(p.text)-size])
}

// executeInPrompt runs the few commands a single-line prompt understands.
// The caret always rests at the end of the text.
func (w *Window) executeInPrompt(action input.Action) error {
	p := w.Prompt()
	if p == nil {
		return host.ErrNoPrompt
	}
	for i := 0; i < action.Times(); i++ {
		switch action.Name {
		case input.CmdInsert:
			p.Type(action.Args.Text)
		case input.CmdDeleteLeft:
			p.Backspace()
		case input.CmdMove, input.CmdMoveTo, input.CmdCopy:
		default:
			return host.ErrUnknownCommand
		}
	}
	return nil
}
