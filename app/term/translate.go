// SPDX-License-Identifier: Unlicense OR MIT

package term

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
)

var allButtons = []pointer.Buttons{
	pointer.ButtonPrimary,
	pointer.ButtonSecondary,
	pointer.ButtonTertiary,
	pointer.ButtonBack,
	pointer.ButtonForward,
}

// translateKey converts a terminal key event to a key press. The
// scan code is the tcell key code.
func translateKey(ev *tcell.EventKey) key.Input {
	k := ev.Key()
	in := key.Input{
		ScanCode:  key.ScanCode(k),
		State:     key.Press,
		Modifiers: translateModifiers(ev.Modifiers()),
	}
	if k == tcell.KeyRune {
		in.Name = runeName(ev.Rune())
		return in
	}
	if n, ok := keyNames[k]; ok {
		in.Name = n
		return in
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		in.Name = key.Name(rune('A' + k - tcell.KeyCtrlA))
		in.Modifiers |= key.ModCtrl
	}
	return in
}

func runeName(r rune) key.Name {
	if r == ' ' {
		return key.NameSpace
	}
	return key.Name(string(unicode.ToUpper(r)))
}

// keyNames maps tcell special keys to key names. Control letters
// sharing a code with a special key, such as Ctrl-I and Tab, are
// reported as the special key.
var keyNames = map[tcell.Key]key.Name{
	tcell.KeyUp:         key.NameUpArrow,
	tcell.KeyDown:       key.NameDownArrow,
	tcell.KeyLeft:       key.NameLeftArrow,
	tcell.KeyRight:      key.NameRightArrow,
	tcell.KeyHome:       key.NameHome,
	tcell.KeyEnd:        key.NameEnd,
	tcell.KeyPgUp:       key.NamePageUp,
	tcell.KeyPgDn:       key.NamePageDown,
	tcell.KeyInsert:     key.NameInsert,
	tcell.KeyDelete:     key.NameDeleteForward,
	tcell.KeyBackspace:  key.NameDeleteBackward,
	tcell.KeyBackspace2: key.NameDeleteBackward,
	tcell.KeyTab:        key.NameTab,
	tcell.KeyEnter:      key.NameReturn,
	tcell.KeyEscape:     key.NameEscape,
	tcell.KeyF1:         key.NameF1,
	tcell.KeyF2:         key.NameF2,
	tcell.KeyF3:         key.NameF3,
	tcell.KeyF4:         key.NameF4,
	tcell.KeyF5:         key.NameF5,
	tcell.KeyF6:         key.NameF6,
	tcell.KeyF7:         key.NameF7,
	tcell.KeyF8:         key.NameF8,
	tcell.KeyF9:         key.NameF9,
	tcell.KeyF10:        key.NameF10,
	tcell.KeyF11:        key.NameF11,
	tcell.KeyF12:        key.NameF12,
}

func translateModifiers(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModSuper
	}
	return mods
}

func translateButtons(m tcell.ButtonMask) pointer.Buttons {
	var btns pointer.Buttons
	if m&tcell.Button1 != 0 {
		btns |= pointer.ButtonPrimary
	}
	if m&tcell.Button2 != 0 {
		btns |= pointer.ButtonSecondary
	}
	if m&tcell.Button3 != 0 {
		btns |= pointer.ButtonTertiary
	}
	if m&tcell.Button4 != 0 {
		btns |= pointer.ButtonBack
	}
	if m&tcell.Button5 != 0 {
		btns |= pointer.ButtonForward
	}
	return btns
}

// wheelDelta returns the scroll of a mouse event in lines. Scrolling
// up or left is positive, as with the browser environment.
func wheelDelta(m tcell.ButtonMask) (pointer.ScrollDelta, bool) {
	var x, y float32
	if m&tcell.WheelUp != 0 {
		y++
	}
	if m&tcell.WheelDown != 0 {
		y--
	}
	if m&tcell.WheelLeft != 0 {
		x++
	}
	if m&tcell.WheelRight != 0 {
		x--
	}
	if m&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) == 0 {
		return pointer.ScrollDelta{}, false
	}
	return pointer.Lines(x, y), true
}

func eventType(ev tcell.Event) string {
	return fmt.Sprintf("%T", ev)
}
