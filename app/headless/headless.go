// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an environment without display for
// running event loops in tests and tools.
//
// Time, display refreshes and input are all driven by the program: a
// Platform fires frame callbacks only when Frame is called and timers
// only when its virtual clock is advanced, and a Canvas raises the
// notifications its methods are named after.
package headless

import (
	"sort"
	"sync"
	"time"

	"gioui.org/evloop/app"
	"gioui.org/evloop/unit"
)

// Epoch is the initial time of a Platform's clock.
var Epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Platform is an app.Platform with a virtual clock and a manually
// pumped display. It is safe for concurrent use.
type Platform struct {
	mu     sync.Mutex
	now    time.Time
	scale  float64
	screen unit.LogicalSize
	seq    uint64
	frames []*request
	timers []*request
}

type request struct {
	seq      uint64
	deadline time.Time
	f        func()
}

// NewPlatform returns a platform with a 1920x1080 screen, a scale
// factor of 1 and its clock set to Epoch.
func NewPlatform() *Platform {
	return &Platform{
		now:    Epoch,
		scale:  1,
		screen: unit.LogicalSize{Width: 1920, Height: 1080},
	}
}

// RequestFrame implements app.Scheduler.
func (p *Platform) RequestFrame(f func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	req := &request{seq: p.seq, f: f}
	p.frames = append(p.frames, req)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.frames = remove(p.frames, req)
	}
}

// AfterFunc implements app.Scheduler.
func (p *Platform) AfterFunc(d time.Duration, f func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	req := &request{seq: p.seq, deadline: p.now.Add(d), f: f}
	p.timers = append(p.timers, req)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.timers = remove(p.timers, req)
	}
}

// Now implements app.Scheduler.
func (p *Platform) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// ScaleFactor implements app.Platform.
func (p *Platform) ScaleFactor() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scale
}

// ScreenSize implements app.Platform.
func (p *Platform) ScreenSize() unit.LogicalSize {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen
}

// SetScaleFactor changes the value returned by ScaleFactor.
func (p *Platform) SetScaleFactor(s float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scale = s
}

// SetScreenSize changes the value returned by ScreenSize.
func (p *Platform) SetScreenSize(s unit.LogicalSize) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screen = s
}

// Frame simulates a display refresh: it calls the frame callbacks
// requested so far, in request order, and returns their number.
// Callbacks requested during Frame wait for the next call.
func (p *Platform) Frame() int {
	p.mu.Lock()
	frames := p.frames
	p.frames = nil
	p.mu.Unlock()
	for _, req := range frames {
		req.f()
	}
	return len(frames)
}

// PendingFrames returns the number of outstanding frame requests.
func (p *Platform) PendingFrames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// PendingTimers returns the number of timers not yet fired.
func (p *Platform) PendingTimers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

// Advance moves the clock forward by d and fires the timers that
// expire on the way, earliest first, with the clock set to each
// timer's deadline. It returns the number of timers fired.
func (p *Platform) Advance(d time.Duration) int {
	p.mu.Lock()
	end := p.now.Add(d)
	p.mu.Unlock()
	fired := 0
	for {
		p.mu.Lock()
		req := p.nextTimerLocked(end)
		if req == nil {
			p.now = end
			p.mu.Unlock()
			return fired
		}
		p.timers = remove(p.timers, req)
		if req.deadline.After(p.now) {
			p.now = req.deadline
		}
		p.mu.Unlock()
		req.f()
		fired++
	}
}

func (p *Platform) nextTimerLocked(end time.Time) *request {
	if len(p.timers) == 0 {
		return nil
	}
	sort.SliceStable(p.timers, func(i, j int) bool {
		ti, tj := p.timers[i], p.timers[j]
		if !ti.deadline.Equal(tj.deadline) {
			return ti.deadline.Before(tj.deadline)
		}
		return ti.seq < tj.seq
	})
	if next := p.timers[0]; !next.deadline.After(end) {
		return next
	}
	return nil
}

func remove(reqs []*request, req *request) []*request {
	for i, r := range reqs {
		if r == req {
			return append(reqs[:i:i], reqs[i+1:]...)
		}
	}
	return reqs
}

var _ app.Platform = (*Platform)(nil)
