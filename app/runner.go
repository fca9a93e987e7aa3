// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"gioui.org/evloop/io/event"
)

// Listener receives every event delivered by a Runner. The value cf
// points to when the listener returns becomes the control flow.
type Listener func(e event.Event, cf *ControlFlow)

var (
	// ErrListenerInstalled is returned by Run when a listener is
	// already installed.
	ErrListenerInstalled = errors.New("app: listener already installed")
	// ErrClosed is returned when the runner has exited or the
	// environment has been unloaded.
	ErrClosed = errors.New("app: event loop closed")

	errNilListener = errors.New("app: nil listener")
)

// turn is the dispatch state of a Runner.
type turn uint8

const (
	// idle means no listener call is in progress; the next event is
	// delivered synchronously by its sender.
	idle turn = iota
	// dispatching means a sender is draining the queue; other
	// senders only enqueue.
	dispatching
)

// Runner serializes events into a single listener.
//
// Events are delivered by whichever caller finds the runner idle: it
// becomes the dispatcher and keeps delivering until the queue is
// empty, including events enqueued by the listener itself or by
// other goroutines in the meantime. All methods are safe for
// concurrent use.
type Runner struct {
	log   *zap.Logger
	sched Scheduler
	frame animationFrame

	mu        sync.Mutex
	state     turn
	listener  Listener
	replace   bool
	queue     []event.Event
	flow      ControlFlow
	unloading bool
	closed    bool

	// redraws lists the windows that requested a redraw since the
	// last frame, in request order.
	redraws   []event.WindowID
	redrawSet map[event.WindowID]struct{}

	timer struct {
		gen      uint64
		stop     func()
		start    time.Time
		deadline time.Time
	}
}

// NewRunner returns an idle runner without listener that schedules
// frames and deadlines with s.
func NewRunner(s Scheduler, opts ...Option) *Runner {
	cnf := newConfig(opts)
	r := &Runner{
		log:       cnf.logger,
		sched:     s,
		replace:   cnf.replaceListener,
		flow:      cnf.controlFlow,
		redrawSet: make(map[event.WindowID]struct{}),
	}
	r.frame.sched = s
	if r.flow.Mode == Exit {
		r.closed = true
	}
	return r
}

// Run installs l and delivers an Init NewEvents event followed by
// the events sent so far. Run returns when the queue is empty.
func (r *Runner) Run(l Listener) error {
	if l == nil {
		return errNilListener
	}
	r.mu.Lock()
	if r.closed || r.unloading {
		r.mu.Unlock()
		return ErrClosed
	}
	if r.listener != nil {
		if !r.replace {
			r.mu.Unlock()
			r.log.Warn("listener already installed")
			return ErrListenerInstalled
		}
		r.listener = l
		r.mu.Unlock()
		r.log.Debug("listener replaced")
		return nil
	}
	r.listener = l
	pending := len(r.queue)
	r.queue = append([]event.Event{event.NewEvents{Cause: event.Init}}, r.queue...)
	if r.state == dispatching {
		r.mu.Unlock()
		return nil
	}
	r.state = dispatching
	r.mu.Unlock()
	r.log.Debug("listener installed", zap.Int("pending", pending))
	r.drain()
	return nil
}

// SendEvent delivers e to the listener, or queues it if the listener
// is running or not yet installed. Events sent after the runner has
// closed are dropped.
func (r *Runner) SendEvent(e event.Event) {
	r.send(e)
}

// send enqueues evs as one uninterrupted sequence and drains the
// queue if the runner is idle. It reports whether the events were
// accepted.
func (r *Runner) send(evs ...event.Event) bool {
	r.mu.Lock()
	if r.closed || r.unloading {
		r.mu.Unlock()
		r.log.Debug("event dropped after close", zap.String("event", eventName(evs[0])))
		return false
	}
	r.queue = append(r.queue, evs...)
	if r.state == dispatching || r.listener == nil {
		r.mu.Unlock()
		return true
	}
	r.state = dispatching
	r.mu.Unlock()
	r.drain()
	return true
}

// drain delivers queued events until the queue is empty. The caller
// must have moved the runner from idle to dispatching.
func (r *Runner) drain() {
	for {
		r.mu.Lock()
		if r.closed || len(r.queue) == 0 {
			acts := r.settleLocked()
			r.state = idle
			r.mu.Unlock()
			for _, f := range acts {
				f()
			}
			return
		}
		e := r.queue[0]
		r.queue[0] = nil
		r.queue = r.queue[1:]
		flow := r.flow
		l := r.listener
		r.mu.Unlock()

		r.dispatch(l, e, &flow)

		_, destroyed := e.(event.LoopDestroyed)
		r.mu.Lock()
		switch {
		case destroyed && r.unloading:
			r.terminateLocked()
		case flow.Mode == Exit:
			r.flow = flow
			r.terminateLocked()
			r.log.Debug("exit requested")
		case r.unloading:
			// Exit stays in effect until LoopDestroyed is delivered.
		default:
			r.flow = flow
		}
		r.mu.Unlock()
	}
}

func (r *Runner) dispatch(l Listener, e event.Event, cf *ControlFlow) {
	defer func() {
		if err := recover(); err != nil {
			r.mu.Lock()
			r.state = idle
			var acts []func()
			if r.unloading {
				r.terminateLocked()
				acts = r.settleLocked()
			}
			r.mu.Unlock()
			for _, f := range acts {
				f()
			}
			r.log.Error("listener panicked",
				zap.String("event", eventName(e)),
				zap.Any("panic", err))
			panic(err)
		}
	}()
	l(e, cf)
}

// settleLocked applies the control flow at the end of a turn. It
// returns the scheduler calls to make after r.mu is released.
func (r *Runner) settleLocked() []func() {
	if r.closed {
		acts := []func(){r.frame.cancel}
		if stop := r.stopTimerLocked(); stop != nil {
			acts = append(acts, stop)
		}
		return acts
	}
	var acts []func()
	switch r.flow.Mode {
	case Poll:
		if stop := r.stopTimerLocked(); stop != nil {
			acts = append(acts, stop)
		}
		r.timer.deadline = time.Time{}
		acts = append(acts, r.armFrame)
	case Wait:
		if stop := r.stopTimerLocked(); stop != nil {
			acts = append(acts, stop)
		}
		r.timer.deadline = time.Time{}
	case WaitUntil:
		deadline := r.flow.Deadline
		if deadline.Equal(r.timer.deadline) {
			// Armed already, or expired and delivered.
			break
		}
		if stop := r.stopTimerLocked(); stop != nil {
			acts = append(acts, stop)
		}
		r.timer.gen++
		gen := r.timer.gen
		start := r.sched.Now()
		r.timer.start = start
		r.timer.deadline = deadline
		acts = append(acts, func() {
			stop := r.sched.AfterFunc(deadline.Sub(start), func() {
				r.resumeTimeReached(gen)
			})
			r.mu.Lock()
			if r.timer.gen == gen && !r.closed {
				r.timer.stop = stop
				stop = nil
			}
			r.mu.Unlock()
			if stop != nil {
				stop()
			}
		})
	}
	return acts
}

// stopTimerLocked invalidates the pending deadline and returns the
// function stopping its platform timer.
func (r *Runner) stopTimerLocked() func() {
	r.timer.gen++
	stop := r.timer.stop
	r.timer.stop = nil
	return stop
}

func (r *Runner) resumeTimeReached(gen uint64) {
	r.mu.Lock()
	if r.closed || r.timer.gen != gen || r.flow.Mode != WaitUntil {
		r.mu.Unlock()
		return
	}
	r.timer.stop = nil
	e := event.NewEvents{
		Cause:     event.ResumeTimeReached,
		Start:     r.timer.start,
		Requested: r.timer.deadline,
	}
	r.mu.Unlock()
	r.send(e)
}

// terminateLocked drops all pending work. Scheduler cleanup happens
// in settleLocked at the end of the turn.
func (r *Runner) terminateLocked() {
	if r.closed {
		return
	}
	r.closed = true
	r.flow = ControlFlow{Mode: Exit}
	for i := range r.queue {
		r.queue[i] = nil
	}
	r.queue = nil
	r.redraws = nil
	clear(r.redrawSet)
}

// RequestRedraw schedules a RedrawRequested event for id at the next
// display refresh. Repeated requests before the refresh result in a
// single event.
func (r *Runner) RequestRedraw(id event.WindowID) {
	r.mu.Lock()
	if r.closed || r.unloading {
		r.mu.Unlock()
		return
	}
	if _, ok := r.redrawSet[id]; !ok {
		r.redrawSet[id] = struct{}{}
		r.redraws = append(r.redraws, id)
	}
	r.mu.Unlock()
	r.armFrame()
}

// armFrame arms the redraw frame unless the runner has closed.
func (r *Runner) armFrame() {
	r.frame.arm(r.redraw)
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	// Exit may have cancelled the frame before it was armed.
	if closed {
		r.frame.cancel()
	}
}

// redraw runs once per armed display refresh. It delivers a Poll
// NewEvents event in polling mode and one RedrawRequested event per
// requesting window, then re-arms the frame while polling or when
// new redraws were requested meanwhile.
func (r *Runner) redraw() {
	r.mu.Lock()
	if r.closed || r.unloading {
		r.mu.Unlock()
		return
	}
	var evs []event.Event
	if r.flow.Mode == Poll && r.listener != nil {
		evs = append(evs, event.NewEvents{Cause: event.Poll})
	}
	for _, id := range r.redraws {
		evs = append(evs, event.RedrawRequested{Window: id})
	}
	r.redraws = r.redraws[:0]
	clear(r.redrawSet)
	r.mu.Unlock()

	if len(evs) > 0 {
		r.send(evs...)
	}

	r.mu.Lock()
	rearm := !r.closed && !r.unloading &&
		(r.flow.Mode == Poll && r.listener != nil || len(r.redraws) > 0)
	r.mu.Unlock()
	if rearm {
		r.armFrame()
	}
}

// HandleUnload delivers LoopDestroyed as the final event and shuts
// the runner down. Events queued but not yet delivered are dropped.
// Later calls, and events sent afterwards, have no effect.
func (r *Runner) HandleUnload() {
	r.mu.Lock()
	if r.closed || r.unloading {
		r.mu.Unlock()
		return
	}
	r.log.Debug("unloading", zap.Int("dropped", len(r.queue)))
	r.flow = ControlFlow{Mode: Exit}
	if r.listener == nil {
		r.terminateLocked()
		acts := r.settleLocked()
		r.mu.Unlock()
		for _, f := range acts {
			f()
		}
		return
	}
	r.unloading = true
	for i := range r.queue {
		r.queue[i] = nil
	}
	r.queue = append(r.queue[:0], event.LoopDestroyed{})
	if r.state == dispatching {
		r.mu.Unlock()
		return
	}
	r.state = dispatching
	r.mu.Unlock()
	r.drain()
}

// ControlFlow returns the control flow in effect.
func (r *Runner) ControlFlow() ControlFlow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flow
}

// Closed reports whether the runner has stopped delivering events.
func (r *Runner) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Proxy returns a handle for sending user events to r.
func (r *Runner) Proxy() Proxy {
	return Proxy{r: r}
}

func eventName(e event.Event) string {
	return fmt.Sprintf("%T", e)
}
