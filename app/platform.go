// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"time"

	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// Scheduler is the timing part of a Platform.
type Scheduler interface {
	// RequestFrame arranges for f to be called once, right before the
	// next display refresh. If the display is hidden, the call is
	// delayed until it is visible again. The returned function cancels
	// the request. RequestFrame must not call f itself.
	RequestFrame(f func()) (cancel func())
	// AfterFunc arranges for f to be called once d has elapsed. The
	// returned function cancels the call.
	AfterFunc(d time.Duration, f func()) (stop func())
	// Now returns the current time.
	Now() time.Time
}

// Platform describes the environment a Target runs in.
type Platform interface {
	Scheduler
	// ScaleFactor returns the number of pixels per device independent
	// pixel of the display.
	ScaleFactor() float64
	// ScreenSize returns the size of the display, or of the
	// browser viewport.
	ScreenSize() unit.LogicalSize
}

// Canvas is a surface that raises input and lifecycle notifications,
// such as a browser canvas element or a terminal screen.
type Canvas interface {
	// Attach starts delivering the notifications of the canvas to h,
	// tagged with id. The returned function stops delivery.
	Attach(id event.WindowID, h Handler) (detach func())
	// Size returns the current size of the canvas.
	Size() unit.PhysicalSize
	// SetSize resizes the canvas.
	SetSize(s unit.PhysicalSize)
	// IsFullscreen reports whether the canvas is displayed
	// fullscreen.
	IsFullscreen() bool
	// SetAttribute sets an environment specific attribute, such as a
	// DOM attribute.
	SetAttribute(name, value string)
}

// Handler receives the raw notifications of attached canvases. A
// single Handler serves every canvas of a Target; the window id
// tells them apart. Handler methods may be called from any goroutine.
type Handler interface {
	Focus(id event.WindowID, focused bool)
	KeyDown(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers)
	KeyUp(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers)
	Char(id event.WindowID, r rune)
	CursorEnter(id event.WindowID, p pointer.ID)
	CursorLeave(id event.WindowID, p pointer.ID)
	CursorMove(id event.WindowID, p pointer.ID, pos f32.Point, mods key.Modifiers)
	ButtonDown(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers)
	ButtonUp(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers)
	Wheel(id event.WindowID, p pointer.ID, d pointer.ScrollDelta, mods key.Modifiers)
	// Resize is called when the environment changed size or scale.
	Resize(id event.WindowID)
	// FullscreenChange is called after the canvas entered or left
	// fullscreen.
	FullscreenChange(id event.WindowID)
	// Unload is called when the environment is about to tear the
	// program down.
	Unload(id event.WindowID)
}
