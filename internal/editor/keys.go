package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key the way keymaps in config.toml spell it.
func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return "ctrl+" + strings.ToLower(string(r))
		}
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyEscape:
		return "esc"
	}
	return ""
}

// ctrlKeyName covers the control chords that do not collide with named
// keys (Tab, Enter and Backspace share codes with ctrl+i, ctrl+m, ctrl+h).
func ctrlKeyName(k tcell.Key) string {
	switch k {
	case tcell.KeyCtrlB:
		return "ctrl+b"
	case tcell.KeyCtrlD:
		return "ctrl+d"
	case tcell.KeyCtrlF:
		return "ctrl+f"
	case tcell.KeyCtrlU:
		return "ctrl+u"
	}
	return ""
}
