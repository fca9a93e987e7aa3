// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// RawHandleAttribute is the canvas attribute holding the window id.
const RawHandleAttribute = "data-raw-handle"

// Target binds canvases to a Runner. It translates the raw
// notifications of every registered canvas into events.
type Target struct {
	runner   *Runner
	platform Platform
	log      *zap.Logger

	mu      sync.Mutex
	windows map[event.WindowID]*registration
}

// registration is the per window state of a Target.
type registration struct {
	canvas Canvas
	detach func()
	// intendedSize is the size to restore when leaving fullscreen.
	intendedSize unit.PhysicalSize
}

// handler is the Handler shared by all canvases of a Target.
type handler struct {
	t *Target
}

// NewTarget returns a Target for the environment p.
func NewTarget(p Platform, opts ...Option) *Target {
	cnf := newConfig(opts)
	return &Target{
		runner:   NewRunner(p, opts...),
		platform: p,
		log:      cnf.logger,
		windows:  make(map[event.WindowID]*registration),
	}
}

// Run installs the listener. See Runner.Run.
func (t *Target) Run(l Listener) error {
	return t.runner.Run(l)
}

// Proxy returns a handle for sending user events.
func (t *Target) Proxy() Proxy {
	return t.runner.Proxy()
}

// Runner returns the runner of t.
func (t *Target) Runner() *Runner {
	return t.runner
}

// GenerateID returns an id never returned before in the process.
func (t *Target) GenerateID() event.WindowID {
	return event.WindowID(generateID())
}

// RequestRedraw schedules a RedrawRequested event for id. See
// Runner.RequestRedraw.
func (t *Target) RequestRedraw(id event.WindowID) {
	t.runner.RequestRedraw(id)
}

// Register starts translating the notifications of c into events
// for window id. The current size of c is recorded as the size to
// restore when c leaves fullscreen.
func (t *Target) Register(c Canvas, id event.WindowID) error {
	t.mu.Lock()
	if _, exists := t.windows[id]; exists {
		t.mu.Unlock()
		return fmt.Errorf("app: window %d already registered", id)
	}
	reg := &registration{
		canvas:       c,
		intendedSize: c.Size(),
	}
	t.windows[id] = reg
	t.mu.Unlock()

	c.SetAttribute(RawHandleAttribute, strconv.FormatUint(uint64(id), 10))
	detach := c.Attach(id, handler{t: t})

	t.mu.Lock()
	if t.windows[id] == reg {
		reg.detach = detach
		detach = nil
	}
	t.mu.Unlock()
	if detach != nil {
		// Unregistered concurrently.
		detach()
		return nil
	}
	t.log.Debug("window registered",
		zap.Uint64("window", uint64(id)),
		zap.Stringer("size", reg.intendedSize))
	return nil
}

// Unregister stops the translation of notifications for id.
func (t *Target) Unregister(id event.WindowID) {
	t.mu.Lock()
	reg, ok := t.windows[id]
	delete(t.windows, id)
	t.mu.Unlock()
	if ok && reg.detach != nil {
		reg.detach()
	}
}

// Windows returns the registered window ids in ascending order.
func (t *Target) Windows() []event.WindowID {
	t.mu.Lock()
	ids := maps.Keys(t.windows)
	t.mu.Unlock()
	slices.Sort(ids)
	return ids
}

func (t *Target) registered(id event.WindowID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.windows[id]
	return ok
}

func (t *Target) sendWindow(id event.WindowID, e event.WindowEventKind) {
	if !t.registered(id) {
		t.log.Debug("notification for unknown window", zap.Uint64("window", uint64(id)))
		return
	}
	t.runner.send(event.WindowEvent{Window: id, Event: e})
}

// scaleFactor returns the scale factor of the platform, or 1 if the
// platform reports an unusable value.
func (t *Target) scaleFactor() float64 {
	s := t.platform.ScaleFactor()
	if !unit.ValidScaleFactor(s) {
		t.log.Warn("invalid scale factor", zap.Float64("scale", s))
		return 1
	}
	return s
}

func (h handler) Focus(id event.WindowID, focused bool) {
	h.t.sendWindow(id, event.Focused{Focused: focused})
}

func (h handler) KeyDown(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers) {
	h.key(id, key.Press, sc, name, mods)
}

func (h handler) KeyUp(id event.WindowID, sc key.ScanCode, name key.Name, mods key.Modifiers) {
	h.key(id, key.Release, sc, name, mods)
}

// key sends the keyboard event immediately followed by the modifier
// snapshot it carries.
func (h handler) key(id event.WindowID, st key.State, sc key.ScanCode, name key.Name, mods key.Modifiers) {
	if !h.t.registered(id) {
		return
	}
	h.t.runner.send(
		event.WindowEvent{
			Window: id,
			Event: event.KeyboardInput{
				Device: event.UnknownDevice,
				Input: key.Input{
					ScanCode:  sc,
					State:     st,
					Name:      name,
					Modifiers: mods,
				},
			},
		},
		event.DeviceEvent{
			Device: event.UnknownDevice,
			Event:  event.ModifiersChanged{Modifiers: mods},
		},
	)
}

func (h handler) Char(id event.WindowID, r rune) {
	h.t.sendWindow(id, event.ReceivedCharacter{Char: r})
}

func (h handler) CursorEnter(id event.WindowID, p pointer.ID) {
	h.t.sendWindow(id, event.CursorEntered{Device: event.PointerDevice(p)})
}

func (h handler) CursorLeave(id event.WindowID, p pointer.ID) {
	h.t.sendWindow(id, event.CursorLeft{Device: event.PointerDevice(p)})
}

func (h handler) CursorMove(id event.WindowID, p pointer.ID, pos f32.Point, mods key.Modifiers) {
	h.t.sendWindow(id, event.CursorMoved{
		Device:    event.PointerDevice(p),
		Position:  pos,
		Modifiers: mods,
	})
}

func (h handler) ButtonDown(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	h.t.sendWindow(id, event.MouseInput{
		Device:    event.PointerDevice(p),
		State:     pointer.Pressed,
		Button:    b,
		Modifiers: mods,
	})
}

func (h handler) ButtonUp(id event.WindowID, p pointer.ID, b pointer.Buttons, mods key.Modifiers) {
	h.t.sendWindow(id, event.MouseInput{
		Device:    event.PointerDevice(p),
		State:     pointer.Released,
		Button:    b,
		Modifiers: mods,
	})
}

func (h handler) Wheel(id event.WindowID, p pointer.ID, d pointer.ScrollDelta, mods key.Modifiers) {
	h.t.sendWindow(id, event.MouseWheel{
		Device:    event.PointerDevice(p),
		Delta:     d,
		Phase:     pointer.Moved,
		Modifiers: mods,
	})
}

func (h handler) Resize(id event.WindowID) {
	scale := h.t.scaleFactor()
	h.t.sendWindow(id, event.ScaleFactorChanged{
		ScaleFactor:  scale,
		NewInnerSize: h.t.platform.ScreenSize().ToPhysical(scale),
	})
}

// FullscreenChange resizes a canvas entering fullscreen to the
// screen size, remembering its size, and restores that size when it
// leaves fullscreen.
func (h handler) FullscreenChange(id event.WindowID) {
	t := h.t
	t.mu.Lock()
	reg, ok := t.windows[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	c := reg.canvas
	var size unit.PhysicalSize
	if c.IsFullscreen() {
		reg.intendedSize = c.Size()
		size = t.platform.ScreenSize().ToPhysical(t.scaleFactor())
	} else {
		size = reg.intendedSize
	}
	t.mu.Unlock()

	c.SetSize(size)
	t.runner.send(event.WindowEvent{Window: id, Event: event.Resized{Size: size}})
	t.runner.RequestRedraw(id)
}

// Unload delivers LoopDestroyed and detaches every canvas.
func (h handler) Unload(id event.WindowID) {
	t := h.t
	t.runner.HandleUnload()
	t.mu.Lock()
	regs := maps.Values(t.windows)
	clear(t.windows)
	t.mu.Unlock()
	for _, reg := range regs {
		if reg.detach != nil {
			reg.detach()
		}
	}
	t.log.Debug("unloaded", zap.Uint64("window", uint64(id)), zap.Int("detached", len(regs)))
}
