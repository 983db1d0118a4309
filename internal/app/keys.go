package app

import (
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input/key"
	"github.com/dshills/marksearch/internal/input/keymap"
)

// HandleKey feeds ev to the key resolver and dispatches the action it
// completes. Enter and Escape typed into a prompt outside a key prefix are
// left to the host, which commits or cancels the prompt itself; they are
// reported as unbound.
func (a *App) HandleKey(w host.Window, inPrompt bool, ev key.Event) (keymap.Status, error) {
	if inPrompt && !a.resolver.IsPending() && (ev.IsEnter() || ev.IsEscape()) {
		return keymap.StatusUnbound, nil
	}

	act, status := a.resolver.Feed(ev)
	if status != keymap.StatusMatched {
		if status == keymap.StatusUnbound {
			a.events.Debug("unbound key", "key", ev.String())
		}
		return status, nil
	}
	if w == nil {
		return status, ErrNoWindow
	}
	if err := a.Dispatch(w, inPrompt, act).Err(); err != nil {
		return status, NewOperationError(act.Name.String(), string(w.ID()), err)
	}
	return status, nil
}

// PendingKeys returns the key prefix typed so far, like "C-x".
func (a *App) PendingKeys() string {
	return a.resolver.Pending()
}

// BindKey binds keys to a named action in the script keymap layer, which
// shadows the configured and default bindings. The action "unbound"
// removes a script binding.
func (a *App) BindKey(keys, action string) error {
	next := a.scriptKeys.Clone()
	if err := next.Override(keys, action); err != nil {
		return err
	}
	if err := a.keymaps.Register(next); err != nil {
		return err
	}
	a.scriptKeys = next
	return nil
}
