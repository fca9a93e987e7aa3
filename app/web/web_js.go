// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

package web

import (
	"sync"
	"syscall/js"
	"time"

	"gioui.org/evloop/app"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// Platform is an app.Platform for the browser window.
type Platform struct {
	window js.Value
}

// NewPlatform returns the Platform of the global window.
func NewPlatform() *Platform {
	return &Platform{window: js.Global().Get("window")}
}

// RequestFrame implements app.Scheduler with requestAnimationFrame.
func (p *Platform) RequestFrame(f func()) func() {
	var once sync.Once
	var jsf js.Func
	release := func() { once.Do(jsf.Release) }
	jsf = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		f()
		return nil
	})
	handle := p.window.Call("requestAnimationFrame", jsf)
	return func() {
		p.window.Call("cancelAnimationFrame", handle)
		release()
	}
}

// AfterFunc implements app.Scheduler with setTimeout.
func (p *Platform) AfterFunc(d time.Duration, f func()) func() {
	var once sync.Once
	var jsf js.Func
	release := func() { once.Do(jsf.Release) }
	jsf = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		f()
		return nil
	})
	handle := p.window.Call("setTimeout", jsf, float64(d)/float64(time.Millisecond))
	return func() {
		p.window.Call("clearTimeout", handle)
		release()
	}
}

// Now implements app.Scheduler.
func (p *Platform) Now() time.Time {
	return time.Now()
}

// ScaleFactor implements app.Platform.
func (p *Platform) ScaleFactor() float64 {
	return p.window.Get("devicePixelRatio").Float()
}

// ScreenSize implements app.Platform. It is the size of the viewport.
func (p *Platform) ScreenSize() unit.LogicalSize {
	return unit.LogicalSize{
		Width:  p.window.Get("innerWidth").Float(),
		Height: p.window.Get("innerHeight").Float(),
	}
}

// Canvas is an app.Canvas for a canvas element.
type Canvas struct {
	window js.Value
	doc    js.Value
	cnv    js.Value
}

// NewCanvas wraps the canvas element cnv.
func NewCanvas(cnv js.Value) *Canvas {
	window := js.Global().Get("window")
	return &Canvas{
		window: window,
		doc:    window.Get("document"),
		cnv:    cnv,
	}
}

// CreateCanvas appends a new focusable canvas element to the
// document body and wraps it.
func CreateCanvas() *Canvas {
	doc := js.Global().Get("document")
	cnv := doc.Call("createElement", "canvas")
	cnv.Set("tabIndex", 0)
	doc.Get("body").Call("appendChild", cnv)
	return NewCanvas(cnv)
}

// Element returns the canvas element.
func (c *Canvas) Element() js.Value {
	return c.cnv
}

// Size implements app.Canvas.
func (c *Canvas) Size() unit.PhysicalSize {
	return unit.PhysicalSize{
		Width:  uint32(c.cnv.Get("width").Int()),
		Height: uint32(c.cnv.Get("height").Int()),
	}
}

// SetSize implements app.Canvas.
func (c *Canvas) SetSize(s unit.PhysicalSize) {
	c.cnv.Set("width", s.Width)
	c.cnv.Set("height", s.Height)
}

// IsFullscreen implements app.Canvas.
func (c *Canvas) IsFullscreen() bool {
	return c.doc.Get("fullscreenElement").Equal(c.cnv)
}

// SetAttribute implements app.Canvas.
func (c *Canvas) SetAttribute(name, value string) {
	c.cnv.Call("setAttribute", name, value)
}

// listeners tracks the DOM listeners of an attachment.
type listeners struct {
	cleanfuncs []func()
}

func (l *listeners) add(this js.Value, name string, f func(e js.Value)) {
	jsf := js.FuncOf(func(this js.Value, args []js.Value) any {
		f(args[0])
		return nil
	})
	this.Call("addEventListener", name, jsf)
	l.cleanfuncs = append(l.cleanfuncs, func() {
		this.Call("removeEventListener", name, jsf)
		jsf.Release()
	})
}

func (l *listeners) cleanup() {
	// Cleanup in the opposite order of construction.
	for i := len(l.cleanfuncs) - 1; i >= 0; i-- {
		l.cleanfuncs[i]()
	}
	l.cleanfuncs = nil
}

// Attach implements app.Canvas.
func (c *Canvas) Attach(id event.WindowID, h app.Handler) func() {
	l := new(listeners)
	l.add(c.cnv, "focus", func(e js.Value) {
		h.Focus(id, true)
	})
	l.add(c.cnv, "blur", func(e js.Value) {
		h.Focus(id, false)
	})
	l.add(c.cnv, "keydown", func(e js.Value) {
		k := e.Get("key").String()
		mods := eventModifiers(e)
		h.KeyDown(id, scanCode(e), translateKey(k), mods)
		if r, ok := keyText(k); ok && mods&^key.ModShift == 0 {
			h.Char(id, r)
		}
	})
	l.add(c.cnv, "keyup", func(e js.Value) {
		h.KeyUp(id, scanCode(e), translateKey(e.Get("key").String()), eventModifiers(e))
	})
	l.add(c.cnv, "pointerover", func(e js.Value) {
		h.CursorEnter(id, pointerID(e))
	})
	l.add(c.cnv, "pointerout", func(e js.Value) {
		h.CursorLeave(id, pointerID(e))
	})
	l.add(c.cnv, "pointermove", func(e js.Value) {
		h.CursorMove(id, pointerID(e), c.position(e), eventModifiers(e))
	})
	l.add(c.cnv, "pointerdown", func(e js.Value) {
		if b, ok := mouseButton(e.Get("button").Int()); ok {
			h.ButtonDown(id, pointerID(e), b, eventModifiers(e))
		}
	})
	l.add(c.cnv, "pointerup", func(e js.Value) {
		if b, ok := mouseButton(e.Get("button").Int()); ok {
			h.ButtonUp(id, pointerID(e), b, eventModifiers(e))
		}
	})
	l.add(c.cnv, "wheel", func(e js.Value) {
		e.Call("preventDefault")
		d := wheelDelta(e.Get("deltaMode").Int(),
			e.Get("deltaX").Float(), e.Get("deltaY").Float(), c.scale())
		h.Wheel(id, pointerID(e), d, eventModifiers(e))
	})
	l.add(c.cnv, "contextmenu", func(e js.Value) {
		e.Call("preventDefault")
	})
	l.add(c.window, "resize", func(e js.Value) {
		h.Resize(id)
	})
	l.add(c.doc, "fullscreenchange", func(e js.Value) {
		h.FullscreenChange(id)
	})
	l.add(c.window, "beforeunload", func(e js.Value) {
		h.Unload(id)
	})
	return l.cleanup
}

func (c *Canvas) scale() float64 {
	return c.window.Get("devicePixelRatio").Float()
}

// position returns the physical position of a pointer event relative
// to the canvas.
func (c *Canvas) position(e js.Value) f32.Point {
	s := c.scale()
	return f32.Pt(
		float32(e.Get("offsetX").Float()*s),
		float32(e.Get("offsetY").Float()*s),
	)
}

func pointerID(e js.Value) pointer.ID {
	if id := e.Get("pointerId"); id.Type() == js.TypeNumber {
		return pointer.ID(id.Int())
	}
	return 0
}

func scanCode(e js.Value) key.ScanCode {
	return key.ScanCode(e.Get("keyCode").Int())
}

func eventModifiers(e js.Value) key.Modifiers {
	return modifiers(
		e.Get("ctrlKey").Bool(),
		e.Get("shiftKey").Bool(),
		e.Get("altKey").Bool(),
		e.Get("metaKey").Bool(),
	)
}

var (
	_ app.Platform = (*Platform)(nil)
	_ app.Canvas   = (*Canvas)(nil)
)
