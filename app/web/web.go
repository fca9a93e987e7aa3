// SPDX-License-Identifier: Unlicense OR MIT

// Package web runs event loops in a browser, with a canvas element as
// the window. It is available for js/wasm builds only; the DOM event
// translation is plain Go.
package web

import (
	"unicode"
	"unicode/utf8"

	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
)

// DOM WheelEvent.deltaMode values.
const (
	deltaPixel = 0x00
	deltaLine  = 0x01
	deltaPage  = 0x02
)

// linesPerPage converts page scrolls to line scrolls.
const linesPerPage = 12

// translateKey converts the key property of a DOM KeyboardEvent to a
// key name. It returns the empty name for keys without one.
func translateKey(k string) key.Name {
	if r, n := utf8.DecodeRuneInString(k); n == len(k) && r != utf8.RuneError {
		if r == ' ' {
			return key.NameSpace
		}
		return key.Name(string(unicode.ToUpper(r)))
	}
	switch k {
	case "ArrowUp":
		return key.NameUpArrow
	case "ArrowDown":
		return key.NameDownArrow
	case "ArrowLeft":
		return key.NameLeftArrow
	case "ArrowRight":
		return key.NameRightArrow
	case "Escape":
		return key.NameEscape
	case "Enter":
		return key.NameReturn
	case "Backspace":
		return key.NameDeleteBackward
	case "Delete":
		return key.NameDeleteForward
	case "Insert":
		return key.NameInsert
	case "Home":
		return key.NameHome
	case "End":
		return key.NameEnd
	case "PageUp":
		return key.NamePageUp
	case "PageDown":
		return key.NamePageDown
	case "Tab":
		return key.NameTab
	case "Control":
		return key.NameCtrl
	case "Shift":
		return key.NameShift
	case "Alt":
		return key.NameAlt
	case "Meta", "OS":
		return key.NameSuper
	case "F1":
		return key.NameF1
	case "F2":
		return key.NameF2
	case "F3":
		return key.NameF3
	case "F4":
		return key.NameF4
	case "F5":
		return key.NameF5
	case "F6":
		return key.NameF6
	case "F7":
		return key.NameF7
	case "F8":
		return key.NameF8
	case "F9":
		return key.NameF9
	case "F10":
		return key.NameF10
	case "F11":
		return key.NameF11
	case "F12":
		return key.NameF12
	}
	return ""
}

// keyText returns the character typed by a key, if the key property
// of its DOM event is a single printable character.
func keyText(k string) (rune, bool) {
	r, n := utf8.DecodeRuneInString(k)
	if n == 0 || n != len(k) || r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

func modifiers(ctrl, shift, alt, meta bool) key.Modifiers {
	var mods key.Modifiers
	if ctrl {
		mods |= key.ModCtrl
	}
	if shift {
		mods |= key.ModShift
	}
	if alt {
		mods |= key.ModAlt
	}
	if meta {
		mods |= key.ModSuper
	}
	return mods
}

// mouseButton converts the button property of a DOM MouseEvent.
func mouseButton(b int) (pointer.Buttons, bool) {
	switch b {
	case 0:
		return pointer.ButtonPrimary, true
	case 1:
		return pointer.ButtonTertiary, true
	case 2:
		return pointer.ButtonSecondary, true
	case 3:
		return pointer.ButtonBack, true
	case 4:
		return pointer.ButtonForward, true
	}
	return 0, false
}

// wheelDelta converts the deltas of a DOM WheelEvent. DOM deltas are
// positive when scrolling down or right; the result is positive when
// scrolling up or left. Pixel deltas are scaled to physical pixels.
func wheelDelta(mode int, dx, dy, scale float64) pointer.ScrollDelta {
	switch mode {
	case deltaLine:
		return pointer.Lines(float32(-dx), float32(-dy))
	case deltaPage:
		return pointer.Lines(float32(-dx*linesPerPage), float32(-dy*linesPerPage))
	default:
		return pointer.Pixels(float32(-dx*scale), float32(-dy*scale))
	}
}
