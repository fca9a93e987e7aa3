// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"sync"

	"gioui.org/evloop/app"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// Canvas is an app.Canvas whose notifications are raised by calling
// its methods. Notifications raised while the canvas is detached are
// ignored. It is safe for concurrent use.
type Canvas struct {
	mu         sync.Mutex
	size       unit.PhysicalSize
	fullscreen bool
	attrs      map[string]string
	id         event.WindowID
	h          app.Handler
}

// NewCanvas returns a canvas of the given size in pixels.
func NewCanvas(width, height uint32) *Canvas {
	return &Canvas{
		size:  unit.PhysicalSize{Width: width, Height: height},
		attrs: make(map[string]string),
	}
}

// Attach implements app.Canvas.
func (c *Canvas) Attach(id event.WindowID, h app.Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id, c.h = id, h
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.h == h && c.id == id {
			c.h = nil
		}
	}
}

// Attached reports whether a handler is attached.
func (c *Canvas) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h != nil
}

// Size implements app.Canvas.
func (c *Canvas) Size() unit.PhysicalSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// SetSize implements app.Canvas.
func (c *Canvas) SetSize(s unit.PhysicalSize) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = s
}

// IsFullscreen implements app.Canvas.
func (c *Canvas) IsFullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullscreen
}

// SetAttribute implements app.Canvas.
func (c *Canvas) SetAttribute(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs[name] = value
}

// Attribute returns the value of an attribute set by SetAttribute.
func (c *Canvas) Attribute(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.attrs[name]
	return v, ok
}

// handler returns the attached handler and window id, if any. The
// handler is called without holding c.mu, so it may call back into c.
func (c *Canvas) handler() (app.Handler, event.WindowID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h, c.id, c.h != nil
}

// Focus raises a focus or blur notification.
func (c *Canvas) Focus(focused bool) {
	if h, id, ok := c.handler(); ok {
		h.Focus(id, focused)
	}
}

// KeyDown raises a key press notification.
func (c *Canvas) KeyDown(sc key.ScanCode, name key.Name, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.KeyDown(id, sc, name, mods)
	}
}

// KeyUp raises a key release notification.
func (c *Canvas) KeyUp(sc key.ScanCode, name key.Name, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.KeyUp(id, sc, name, mods)
	}
}

// Char raises a text input notification.
func (c *Canvas) Char(r rune) {
	if h, id, ok := c.handler(); ok {
		h.Char(id, r)
	}
}

// PointerEnter raises a pointer enter notification.
func (c *Canvas) PointerEnter(p pointer.ID) {
	if h, id, ok := c.handler(); ok {
		h.CursorEnter(id, p)
	}
}

// PointerLeave raises a pointer leave notification.
func (c *Canvas) PointerLeave(p pointer.ID) {
	if h, id, ok := c.handler(); ok {
		h.CursorLeave(id, p)
	}
}

// PointerMove raises a pointer move notification.
func (c *Canvas) PointerMove(p pointer.ID, pos f32.Point, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.CursorMove(id, p, pos, mods)
	}
}

// ButtonDown raises a button press notification.
func (c *Canvas) ButtonDown(p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.ButtonDown(id, p, b, mods)
	}
}

// ButtonUp raises a button release notification.
func (c *Canvas) ButtonUp(p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.ButtonUp(id, p, b, mods)
	}
}

// Wheel raises a wheel notification.
func (c *Canvas) Wheel(p pointer.ID, d pointer.ScrollDelta, mods key.Modifiers) {
	if h, id, ok := c.handler(); ok {
		h.Wheel(id, p, d, mods)
	}
}

// Resize raises a resize notification. Change the platform's screen
// size or scale factor first to simulate a window resize.
func (c *Canvas) Resize() {
	if h, id, ok := c.handler(); ok {
		h.Resize(id)
	}
}

// SetFullscreen changes the fullscreen state and raises a fullscreen
// change notification if it differs from the current state.
func (c *Canvas) SetFullscreen(fullscreen bool) {
	c.mu.Lock()
	changed := c.fullscreen != fullscreen
	c.fullscreen = fullscreen
	c.mu.Unlock()
	if !changed {
		return
	}
	if h, id, ok := c.handler(); ok {
		h.FullscreenChange(id)
	}
}

// Unload raises a teardown notification.
func (c *Canvas) Unload() {
	if h, id, ok := c.handler(); ok {
		h.Unload(id)
	}
}

var _ app.Canvas = (*Canvas)(nil)
