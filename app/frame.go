// SPDX-License-Identifier: Unlicense OR MIT

package app

import "sync"

// animationFrame keeps at most one frame request outstanding with
// a Scheduler. Firing disarms it before running the callback;
// re-arming is up to the callback.
type animationFrame struct {
	sched Scheduler

	mu       sync.Mutex
	armed    bool
	gen      uint64
	cancelFn func()
}

// arm requests a frame that calls cb, unless one is already
// outstanding.
func (a *animationFrame) arm(cb func()) {
	a.mu.Lock()
	if a.armed {
		a.mu.Unlock()
		return
	}
	a.armed = true
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	cancel := a.sched.RequestFrame(func() {
		a.fire(gen, cb)
	})

	a.mu.Lock()
	if a.armed && a.gen == gen {
		a.cancelFn = cancel
		cancel = nil
	}
	a.mu.Unlock()
	// The request was cancelled or fired before RequestFrame returned.
	if cancel != nil {
		cancel()
	}
}

func (a *animationFrame) fire(gen uint64, cb func()) {
	a.mu.Lock()
	if !a.armed || a.gen != gen {
		a.mu.Unlock()
		return
	}
	a.armed = false
	a.cancelFn = nil
	a.mu.Unlock()
	cb()
}

func (a *animationFrame) isArmed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.armed
}

// cancel drops the outstanding request, if any.
func (a *animationFrame) cancel() {
	a.mu.Lock()
	if !a.armed {
		a.mu.Unlock()
		return
	}
	a.armed = false
	a.gen++
	cancel := a.cancelFn
	a.cancelFn = nil
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
