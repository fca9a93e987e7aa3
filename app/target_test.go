// SPDX-License-Identifier: Unlicense OR MIT

package app_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gioui.org/evloop/app"
	"gioui.org/evloop/app/headless"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

type fixture struct {
	p   *headless.Platform
	t   *app.Target
	c   *headless.Canvas
	id  event.WindowID
	rec *recorder
}

func newFixture(t *testing.T, width, height uint32, opts ...app.Option) *fixture {
	t.Helper()
	p := headless.NewPlatform()
	opts = append([]app.Option{app.WithControlFlow(app.ControlFlow{Mode: app.Wait})}, opts...)
	tgt := app.NewTarget(p, opts...)
	c := headless.NewCanvas(width, height)
	id := tgt.GenerateID()
	require.NoError(t, tgt.Register(c, id))
	rec := &recorder{}
	require.NoError(t, tgt.Run(rec.listen))
	assertEvents(t, []event.Event{initEvent}, rec.take())
	return &fixture{p: p, t: tgt, c: c, id: id, rec: rec}
}

func (f *fixture) window(k event.WindowEventKind) event.Event {
	return event.WindowEvent{Window: f.id, Event: k}
}

func TestKeyPressFollowedByModifiers(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.c.KeyDown(30, "A", key.ModShift)
	f.c.KeyUp(30, "A", 0)
	assertEvents(t, []event.Event{
		f.window(event.KeyboardInput{
			Device: event.UnknownDevice,
			Input:  key.Input{ScanCode: 30, State: key.Press, Name: "A", Modifiers: key.ModShift},
		}),
		event.DeviceEvent{
			Device: event.UnknownDevice,
			Event:  event.ModifiersChanged{Modifiers: key.ModShift},
		},
		f.window(event.KeyboardInput{
			Device: event.UnknownDevice,
			Input:  key.Input{ScanCode: 30, State: key.Release, Name: "A"},
		}),
		event.DeviceEvent{
			Device: event.UnknownDevice,
			Event:  event.ModifiersChanged{},
		},
	}, f.rec.take())
}

func TestKeyPairNotInterleaved(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.rec.on = func(e event.Event, cf *app.ControlFlow) {
		if we, ok := e.(event.WindowEvent); ok {
			if _, ok := we.Event.(event.KeyboardInput); ok {
				// Raised between the key event and its modifiers.
				f.c.Char('a')
			}
		}
	}
	f.c.KeyDown(30, "A", 0)
	evs := f.rec.take()
	require.Len(t, evs, 3)
	assert.IsType(t, event.DeviceEvent{}, evs[1])
	assert.Equal(t, f.window(event.ReceivedCharacter{Char: 'a'}), evs[2])
}

func TestWindowNotifications(t *testing.T) {
	f := newFixture(t, 800, 600)
	pos := f32.Pt(10, 20.5)
	f.c.Focus(true)
	f.c.Char('é')
	f.c.PointerEnter(3)
	f.c.PointerMove(3, pos, key.ModCtrl)
	f.c.ButtonDown(3, pointer.ButtonPrimary, 0)
	f.c.ButtonUp(3, pointer.ButtonPrimary, key.ModAlt)
	f.c.Wheel(3, pointer.Lines(0, 3), 0)
	f.c.PointerLeave(3)
	f.c.Focus(false)

	dev := event.PointerDevice(3)
	assertEvents(t, []event.Event{
		f.window(event.Focused{Focused: true}),
		f.window(event.ReceivedCharacter{Char: 'é'}),
		f.window(event.CursorEntered{Device: dev}),
		f.window(event.CursorMoved{Device: dev, Position: pos, Modifiers: key.ModCtrl}),
		f.window(event.MouseInput{Device: dev, State: pointer.Pressed, Button: pointer.ButtonPrimary}),
		f.window(event.MouseInput{Device: dev, State: pointer.Released, Button: pointer.ButtonPrimary, Modifiers: key.ModAlt}),
		f.window(event.MouseWheel{Device: dev, Delta: pointer.Lines(0, 3), Phase: pointer.Moved}),
		f.window(event.CursorLeft{Device: dev}),
		f.window(event.Focused{Focused: false}),
	}, f.rec.take())
}

func TestResizeReportsScaleFactor(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.p.SetScaleFactor(1.5)
	f.p.SetScreenSize(unit.LogicalSize{Width: 1000, Height: 500})
	f.c.Resize()
	assertEvents(t, []event.Event{
		f.window(event.ScaleFactorChanged{
			ScaleFactor:  1.5,
			NewInnerSize: unit.PhysicalSize{Width: 1500, Height: 750},
		}),
	}, f.rec.take())
}

func TestInvalidScaleFactorFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := newFixture(t, 800, 600, app.WithLogger(zap.New(core)))
	f.p.SetScaleFactor(0)
	f.c.Resize()
	assertEvents(t, []event.Event{
		f.window(event.ScaleFactorChanged{
			ScaleFactor:  1,
			NewInnerSize: unit.PhysicalSize{Width: 1920, Height: 1080},
		}),
	}, f.rec.take())
	assert.Equal(t, 1, logs.FilterMessage("invalid scale factor").Len())
}

func TestFullscreenRestoresIntendedSize(t *testing.T) {
	tests := []struct {
		name       string
		scale      float64
		w, h       uint32
		fullscreen unit.PhysicalSize
	}{
		{"unscaled", 1, 800, 600, unit.PhysicalSize{Width: 1920, Height: 1080}},
		{"hidpi", 2, 1600, 1200, unit.PhysicalSize{Width: 3840, Height: 2160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.w, tt.h)
			f.p.SetScaleFactor(tt.scale)
			intended := unit.PhysicalSize{Width: tt.w, Height: tt.h}

			f.c.SetFullscreen(true)
			assert.Equal(t, tt.fullscreen, f.c.Size())
			f.c.SetFullscreen(false)
			assert.Equal(t, intended, f.c.Size())

			assertEvents(t, []event.Event{
				f.window(event.Resized{Size: tt.fullscreen}),
				f.window(event.Resized{Size: intended}),
			}, f.rec.take())

			// Both changes requested a redraw, delivered once.
			assert.Equal(t, 1, f.p.Frame())
			assertEvents(t, []event.Event{
				event.RedrawRequested{Window: f.id},
			}, f.rec.take())
		})
	}
}

func TestFullscreenRemembersLatestSize(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.c.SetSize(unit.PhysicalSize{Width: 1024, Height: 768})
	f.c.SetFullscreen(true)
	f.c.SetFullscreen(false)
	evs := without(f.rec.take())
	require.Len(t, evs, 2)
	assert.Equal(t, f.window(event.Resized{Size: unit.PhysicalSize{Width: 1024, Height: 768}}), evs[1])
}

func TestRegister(t *testing.T) {
	p := headless.NewPlatform()
	tgt := app.NewTarget(p)
	c := headless.NewCanvas(10, 10)
	id := tgt.GenerateID()
	require.NoError(t, tgt.Register(c, id))
	assert.True(t, c.Attached())
	v, ok := c.Attribute(app.RawHandleAttribute)
	require.True(t, ok)
	assert.Equal(t, strconv.FormatUint(uint64(id), 10), v)

	assert.Error(t, tgt.Register(headless.NewCanvas(1, 1), id))

	tgt.Unregister(id)
	assert.False(t, c.Attached())
	assert.Empty(t, tgt.Windows())
	// Unknown ids are ignored.
	tgt.Unregister(id)
}

func TestWindowsSorted(t *testing.T) {
	tgt := app.NewTarget(headless.NewPlatform())
	ids := []event.WindowID{tgt.GenerateID(), tgt.GenerateID(), tgt.GenerateID()}
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, tgt.Register(headless.NewCanvas(1, 1), ids[i]))
	}
	assert.Equal(t, ids, tgt.Windows())
}

func TestNotificationsAfterUnregisterIgnored(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.t.Unregister(f.id)
	f.c.KeyDown(1, "B", 0)
	f.c.Focus(true)
	assert.Empty(t, f.rec.take())
}

func TestSharedHandlerRoutesByWindow(t *testing.T) {
	f := newFixture(t, 800, 600)
	other := headless.NewCanvas(100, 100)
	otherID := f.t.GenerateID()
	require.NoError(t, f.t.Register(other, otherID))
	other.Focus(true)
	f.c.Focus(true)
	assertEvents(t, []event.Event{
		event.WindowEvent{Window: otherID, Event: event.Focused{Focused: true}},
		f.window(event.Focused{Focused: true}),
	}, f.rec.take())
}

func TestUnloadDetachesCanvases(t *testing.T) {
	f := newFixture(t, 800, 600)
	other := headless.NewCanvas(100, 100)
	require.NoError(t, f.t.Register(other, f.t.GenerateID()))
	f.t.RequestRedraw(f.id)

	f.c.Unload()
	assertEvents(t, []event.Event{event.LoopDestroyed{}}, f.rec.take())
	assert.False(t, f.c.Attached())
	assert.False(t, other.Attached())
	assert.Empty(t, f.t.Windows())
	assert.Zero(t, f.p.PendingFrames())
	assert.ErrorIs(t, f.t.Proxy().SendEvent(1), app.ErrClosed)
}

func TestGenerateIDUnique(t *testing.T) {
	a := app.NewTarget(headless.NewPlatform())
	b := app.NewTarget(headless.NewPlatform())
	const n = 100
	var (
		mu   sync.Mutex
		seen = make(map[event.WindowID]bool)
		wg   sync.WaitGroup
	)
	for _, tgt := range []*app.Target{a, b} {
		wg.Add(1)
		go func(tgt *app.Target) {
			defer wg.Done()
			last := event.WindowID(0)
			for i := 0; i < n; i++ {
				id := tgt.GenerateID()
				assert.Greater(t, id, last)
				last = id
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}(tgt)
	}
	wg.Wait()
	assert.Len(t, seen, 2*n)
}
