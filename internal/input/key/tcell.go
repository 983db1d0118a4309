package key

import (
	"github.com/gdamore/tcell/v2"
)

// tcellKeys maps tcell special keys to Keys.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
}

// FromTcell converts a terminal key event. The second result is false for
// keys with no equivalent.
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	mods := fromTcellMods(ev.Modifiers())

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods), true
	case k == tcell.KeyCtrlSpace:
		return NewSpecialEvent(KeySpace, mods.With(ModCtrl)), true
	}

	// Tab, Enter, Backspace and Escape share codes with control letters, so
	// named keys are checked first and lose the implied Control.
	if special, ok := tcellKeys[k]; ok {
		if k <= tcell.KeyUS {
			mods = mods.Without(ModCtrl)
		}
		return NewSpecialEvent(special, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return NewRuneEvent(rune('a'+int(k-tcell.KeyCtrlA)), mods.With(ModCtrl)), true
	}
	return Event{}, false
}

func fromTcellMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(ModMeta)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	return mods
}
