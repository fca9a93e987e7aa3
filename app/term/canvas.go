// SPDX-License-Identifier: Unlicense OR MIT

package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"gioui.org/evloop/app"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// mousePointer is the pointer id of the terminal mouse.
const mousePointer pointer.ID = 0

// Canvas is an app.Canvas covering a terminal screen.
type Canvas struct {
	screen Screen
	log    *zap.Logger

	mu    sync.Mutex
	attrs map[string]string
	id    event.WindowID
	h     app.Handler

	// Mouse state, owned by the poll goroutine.
	inside  bool
	pos     f32.Point
	buttons pointer.Buttons

	// handling is set while the poll goroutine handles an event.
	handling bool
	closing  bool

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// NewCanvas returns a canvas for the initialized screen s.
func NewCanvas(s Screen) *Canvas {
	return &Canvas{
		screen: s,
		log:    app.Logger(),
		attrs:  make(map[string]string),
		done:   make(chan struct{}),
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

// Size implements app.Canvas.
func (c *Canvas) Size() unit.PhysicalSize {
	w, h := c.screen.Size()
	return unit.PhysicalSize{Width: uint32(max(w, 0)), Height: uint32(max(h, 0))}
}

// SetSize implements app.Canvas. The terminal emulator owns the
// size of the screen; SetSize does nothing.
func (c *Canvas) SetSize(unit.PhysicalSize) {}

// IsFullscreen implements app.Canvas. A terminal has no fullscreen
// mode.
func (c *Canvas) IsFullscreen() bool {
	return false
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

func (c *Canvas) handler() (app.Handler, event.WindowID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h, c.id, c.h != nil
}

// Start enables mouse and focus reporting and starts delivering the
// screen's events. Calls after the first have no effect.
func (c *Canvas) Start() {
	c.startOnce.Do(func() {
		c.screen.EnableMouse()
		c.screen.EnableFocus()
		go c.poll()
	})
}

func (c *Canvas) poll() {
	defer close(c.done)
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		c.mu.Lock()
		if c.closing {
			c.mu.Unlock()
			return
		}
		c.handling = true
		c.mu.Unlock()

		c.handle(ev)

		c.mu.Lock()
		c.handling = false
		closing := c.closing
		c.mu.Unlock()
		if closing {
			return
		}
	}
}

// Close raises a teardown notification and finalizes the screen. It
// waits for the event goroutine started by Start to exit, except when
// called while an event is being handled, such as from the listener.
// The goroutine then exits after that event.
func (c *Canvas) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closing = true
		nested := c.handling
		c.mu.Unlock()
		if h, id, ok := c.handler(); ok {
			h.Unload(id)
		}
		c.screen.Fini()
		started := true
		c.startOnce.Do(func() { started = false })
		if started && !nested {
			<-c.done
		}
	})
}

// handle translates a single screen event.
func (c *Canvas) handle(ev tcell.Event) {
	h, id, ok := c.handler()
	if !ok {
		return
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in := translateKey(ev)
		h.KeyDown(id, in.ScanCode, in.Name, in.Modifiers)
		if ev.Key() == tcell.KeyRune {
			h.Char(id, ev.Rune())
		}
		h.KeyUp(id, in.ScanCode, in.Name, in.Modifiers)
	case *tcell.EventMouse:
		c.mouse(h, id, ev)
	case *tcell.EventResize:
		h.Resize(id)
	case *tcell.EventFocus:
		if !ev.Focused && c.inside {
			c.inside = false
			h.CursorLeave(id, mousePointer)
		}
		h.Focus(id, ev.Focused)
	default:
		c.log.Debug("ignored terminal event", zap.String("event", eventType(ev)))
	}
}

// mouse derives pointer notifications from the state reported by a
// mouse event.
func (c *Canvas) mouse(h app.Handler, id event.WindowID, ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := f32.Pt(float32(x), float32(y))
	mods := translateModifiers(ev.Modifiers())
	mask := ev.Buttons()

	moved := pos != c.pos
	if !c.inside {
		c.inside = true
		moved = true
		h.CursorEnter(id, mousePointer)
	}
	if moved {
		c.pos = pos
		h.CursorMove(id, mousePointer, pos, mods)
	}

	btns := translateButtons(mask)
	for _, b := range allButtons {
		switch {
		case btns.Contain(b) && !c.buttons.Contain(b):
			h.ButtonDown(id, mousePointer, b, mods)
		case !btns.Contain(b) && c.buttons.Contain(b):
			h.ButtonUp(id, mousePointer, b, mods)
		}
	}
	c.buttons = btns

	if d, ok := wheelDelta(mask); ok {
		h.Wheel(id, mousePointer, d, mods)
	}
}

var _ app.Canvas = (*Canvas)(nil)
