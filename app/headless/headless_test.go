// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/evloop/app"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

func TestFrame(t *testing.T) {
	p := NewPlatform()
	var order []int
	p.RequestFrame(func() {
		order = append(order, 1)
		// Requested during a frame: waits for the next one.
		p.RequestFrame(func() { order = append(order, 3) })
	})
	cancel := p.RequestFrame(func() { order = append(order, 0) })
	p.RequestFrame(func() { order = append(order, 2) })
	cancel()
	assert.Equal(t, 2, p.PendingFrames())

	assert.Equal(t, 2, p.Frame())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, p.PendingFrames())
	assert.Equal(t, 1, p.Frame())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, p.Frame())
}

func TestAdvance(t *testing.T) {
	p := NewPlatform()
	var fired []time.Duration
	at := func(d time.Duration) func() {
		return func() {
			assert.Equal(t, Epoch.Add(d), p.Now())
			fired = append(fired, d)
		}
	}
	p.AfterFunc(3*time.Second, at(3*time.Second))
	p.AfterFunc(time.Second, at(time.Second))
	stop := p.AfterFunc(2*time.Second, at(2*time.Second))
	p.AfterFunc(time.Second, func() {
		fired = append(fired, -1)
		p.AfterFunc(500*time.Millisecond, at(1500*time.Millisecond))
	})
	stop()
	assert.Equal(t, 3, p.PendingTimers())

	assert.Zero(t, p.Advance(999*time.Millisecond))
	assert.Equal(t, Epoch.Add(999*time.Millisecond), p.Now())

	assert.Equal(t, 3, p.Advance(time.Second))
	assert.Equal(t, []time.Duration{time.Second, -1, 1500 * time.Millisecond}, fired)
	assert.Equal(t, Epoch.Add(1999*time.Millisecond), p.Now())
	assert.Equal(t, 1, p.PendingTimers())

	assert.Equal(t, 1, p.Advance(time.Hour))
	assert.Zero(t, p.PendingTimers())
}

func TestZeroDelayTimer(t *testing.T) {
	p := NewPlatform()
	fired := false
	p.AfterFunc(0, func() { fired = true })
	assert.False(t, fired, "AfterFunc called f synchronously")
	assert.Equal(t, 1, p.Advance(0))
	assert.True(t, fired)
}

func TestPlatformDisplay(t *testing.T) {
	p := NewPlatform()
	assert.Equal(t, 1.0, p.ScaleFactor())
	assert.Equal(t, unit.LogicalSize{Width: 1920, Height: 1080}, p.ScreenSize())
	p.SetScaleFactor(2)
	p.SetScreenSize(unit.LogicalSize{Width: 640, Height: 480})
	assert.Equal(t, 2.0, p.ScaleFactor())
	assert.Equal(t, unit.LogicalSize{Width: 640, Height: 480}, p.ScreenSize())
}

// handlerLog records the notifications of a Canvas as strings.
type handlerLog struct {
	calls []string
}

func (h *handlerLog) add(id event.WindowID, what string) {
	h.calls = append(h.calls, strconv.FormatUint(uint64(id), 10)+" "+what)
}

func (h *handlerLog) Focus(id event.WindowID, focused bool) {
	if focused {
		h.add(id, "focus")
	} else {
		h.add(id, "blur")
	}
}

func (h *handlerLog) KeyDown(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers) {
	h.add(id, "keydown "+string(name))
}

func (h *handlerLog) KeyUp(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers) {
	h.add(id, "keyup "+string(name))
}

func (h *handlerLog) Char(id event.WindowID, r rune) {
	h.add(id, "char "+string(r))
}

func (h *handlerLog) CursorEnter(id event.WindowID, p pointer.ID) { h.add(id, "enter") }
func (h *handlerLog) CursorLeave(id event.WindowID, p pointer.ID) { h.add(id, "leave") }

func (h *handlerLog) CursorMove(id event.WindowID, p pointer.ID, pos f32.Point, mods key.Modifiers) {
	h.add(id, "move "+pos.String())
}

func (h *handlerLog) ButtonDown(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	h.add(id, "down "+b.String())
}

func (h *handlerLog) ButtonUp(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	h.add(id, "up "+b.String())
}

func (h *handlerLog) Wheel(id event.WindowID, p pointer.ID, d pointer.ScrollDelta, mods key.Modifiers) {
	h.add(id, "wheel "+d.String())
}

func (h *handlerLog) Resize(id event.WindowID)           { h.add(id, "resize") }
func (h *handlerLog) FullscreenChange(id event.WindowID) { h.add(id, "fullscreen") }
func (h *handlerLog) Unload(id event.WindowID)           { h.add(id, "unload") }

var _ app.Handler = (*handlerLog)(nil)

func TestCanvasNotifications(t *testing.T) {
	c := NewCanvas(100, 50)
	// Detached: ignored.
	c.Focus(true)

	h := new(handlerLog)
	detach := c.Attach(4, h)
	require.True(t, c.Attached())
	c.Focus(true)
	c.KeyDown(30, "A", 0)
	c.KeyUp(30, "A", 0)
	c.Char('a')
	c.PointerEnter(1)
	c.PointerMove(1, f32.Pt(1, 2), 0)
	c.ButtonDown(1, pointer.ButtonSecondary, 0)
	c.ButtonUp(1, pointer.ButtonSecondary, 0)
	c.Wheel(1, pointer.Pixels(0, 4), 0)
	c.PointerLeave(1)
	c.Resize()
	c.SetFullscreen(false)
	c.SetFullscreen(true)
	c.SetFullscreen(true)
	c.Unload()
	c.Focus(false)
	detach()
	assert.False(t, c.Attached())
	c.Focus(true)

	assert.Equal(t, []string{
		"4 focus",
		"4 keydown A",
		"4 keyup A",
		"4 char a",
		"4 enter",
		"4 move (1,2)",
		"4 down ButtonSecondary",
		"4 up ButtonSecondary",
		"4 wheel (0,4)px",
		"4 leave",
		"4 resize",
		"4 fullscreen",
		"4 unload",
		"4 blur",
	}, h.calls)
	assert.True(t, c.IsFullscreen())
}

func TestCanvasStaleDetach(t *testing.T) {
	c := NewCanvas(1, 1)
	detach := c.Attach(1, new(handlerLog))
	c.Attach(2, new(handlerLog))
	detach()
	assert.True(t, c.Attached(), "stale detach removed the new handler")
}

func TestCanvasAttributes(t *testing.T) {
	c := NewCanvas(1, 1)
	_, ok := c.Attribute("id")
	assert.False(t, ok)
	c.SetAttribute("id", "x")
	v, ok := c.Attribute("id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	c.SetSize(unit.PhysicalSize{Width: 3, Height: 4})
	assert.Equal(t, unit.PhysicalSize{Width: 3, Height: 4}, c.Size())
}
