// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"gioui.org/evloop/app"
	"gioui.org/evloop/io/event"
)

// builder accumulates a JSON object, keeping the first error.
type builder struct {
	json string
	err  error
}

func (b *builder) set(path string, v any) {
	if b.err != nil {
		return
	}
	b.json, b.err = sjson.Set(b.json, path, v)
}

// record encodes a dispatched event and the control flow in effect
// when it was dispatched.
func record(seq int, e event.Event, cf app.ControlFlow) (string, error) {
	b := &builder{json: "{}"}
	b.set("seq", seq)
	b.set("type", typeName(e))
	b.set("controlFlow", cf.String())
	switch e := e.(type) {
	case event.NewEvents:
		b.set("cause", e.Cause.String())
		if e.Cause == event.ResumeTimeReached {
			b.set("start", e.Start.Format(time.RFC3339Nano))
			b.set("requested", e.Requested.Format(time.RFC3339Nano))
		}
	case event.WindowEvent:
		b.set("window", uint64(e.Window))
		b.set("kind", typeName(e.Event))
		windowEvent(b, e.Event)
	case event.DeviceEvent:
		b.set("device", e.Device.String())
		b.set("kind", typeName(e.Event))
		if m, ok := e.Event.(event.ModifiersChanged); ok {
			b.set("modifiers", m.Modifiers.String())
		}
	case event.UserEvent:
		if req, ok := e.Payload.(flowRequest); ok {
			b.set("flow", req.mode.String())
		} else {
			b.set("payload", e.Payload)
		}
	case event.RedrawRequested:
		b.set("window", uint64(e.Window))
	}
	return b.json, b.err
}

func windowEvent(b *builder, k event.WindowEventKind) {
	switch k := k.(type) {
	case event.Focused:
		b.set("focused", k.Focused)
	case event.KeyboardInput:
		b.set("device", k.Device.String())
		b.set("key.state", k.Input.State.String())
		b.set("key.name", string(k.Input.Name))
		b.set("key.scancode", uint32(k.Input.ScanCode))
		b.set("key.modifiers", k.Input.Modifiers.String())
	case event.ReceivedCharacter:
		b.set("char", string(k.Char))
	case event.CursorEntered:
		b.set("device", k.Device.String())
	case event.CursorLeft:
		b.set("device", k.Device.String())
	case event.CursorMoved:
		b.set("device", k.Device.String())
		b.set("position.x", k.Position.X)
		b.set("position.y", k.Position.Y)
		b.set("modifiers", k.Modifiers.String())
	case event.MouseInput:
		b.set("device", k.Device.String())
		b.set("state", k.State.String())
		b.set("button", k.Button.String())
		b.set("modifiers", k.Modifiers.String())
	case event.MouseWheel:
		b.set("device", k.Device.String())
		b.set("delta", k.Delta.String())
		b.set("phase", k.Phase.String())
		b.set("modifiers", k.Modifiers.String())
	case event.Resized:
		b.set("size.width", k.Size.Width)
		b.set("size.height", k.Size.Height)
	case event.ScaleFactorChanged:
		b.set("scaleFactor", k.ScaleFactor)
		b.set("size.width", k.NewInnerSize.Width)
		b.set("size.height", k.NewInnerSize.Height)
	}
}

// typeName returns the unqualified type name of v.
func typeName(v any) string {
	n := fmt.Sprintf("%T", v)
	if i := strings.LastIndexByte(n, '.'); i >= 0 {
		n = n[i+1:]
	}
	return n
}
