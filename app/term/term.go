// SPDX-License-Identifier: Unlicense OR MIT

/*
Package term runs event loops in a terminal.

A terminal is a single window whose pixels are character cells. The
Canvas reads events from a tcell screen on its own goroutine and
raises the matching notifications; the Platform times frames and
deadlines with the system clock.

	s, err := tcell.NewScreen()
	...
	if err := s.Init(); err != nil {
		...
	}
	t := app.NewTarget(term.NewPlatform(s))
	c := term.NewCanvas(s)
	t.Register(c, t.GenerateID())
	t.Run(listener)
	c.Start()
	...
	c.Close()

Terminals do not report key releases. A key press is followed by the
text it produces, if any, and by a synthesized release.
*/
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"gioui.org/evloop/app"
	"gioui.org/evloop/unit"
)

// FrameInterval is the time between two display refreshes.
const FrameInterval = 16 * time.Millisecond

// Screen is the part of tcell.Screen used by this package.
type Screen interface {
	Size() (width, height int)
	EnableMouse(...tcell.MouseFlags)
	EnableFocus()
	// PollEvent waits for the next event. It returns nil once the
	// screen is finalized.
	PollEvent() tcell.Event
	Fini()
}

// Platform is an app.Platform for a terminal screen.
type Platform struct {
	screen Screen
}

// NewPlatform returns a Platform measuring s.
func NewPlatform(s Screen) *Platform {
	return &Platform{screen: s}
}

// RequestFrame implements app.Scheduler. Terminals have no vertical
// blank; frames are paced by FrameInterval.
func (p *Platform) RequestFrame(f func()) func() {
	t := time.AfterFunc(FrameInterval, f)
	return func() { t.Stop() }
}

// AfterFunc implements app.Scheduler.
func (p *Platform) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Now implements app.Scheduler.
func (p *Platform) Now() time.Time {
	return time.Now()
}

// ScaleFactor implements app.Platform. A cell is a pixel.
func (p *Platform) ScaleFactor() float64 {
	return 1
}

// ScreenSize implements app.Platform.
func (p *Platform) ScreenSize() unit.LogicalSize {
	w, h := p.screen.Size()
	return unit.LogicalSize{Width: float64(w), Height: float64(h)}
}

var _ app.Platform = (*Platform)(nil)
