// SPDX-License-Identifier: Unlicense OR MIT

package app_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gioui.org/evloop/app"
	"gioui.org/evloop/io/event"
)

// recorder is a listener that records the events it receives.
type recorder struct {
	mu     sync.Mutex
	events []event.Event
	// on, if set, is called after recording each event.
	on func(e event.Event, cf *app.ControlFlow)
}

func (r *recorder) listen(e event.Event, cf *app.ControlFlow) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	if r.on != nil {
		r.on(e, cf)
	}
}

// take returns the recorded events and forgets them.
func (r *recorder) take() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.events
	r.events = nil
	return evs
}

// without returns evs without NewEvents events.
func without(evs []event.Event) []event.Event {
	var res []event.Event
	for _, e := range evs {
		if _, ok := e.(event.NewEvents); ok {
			continue
		}
		res = append(res, e)
	}
	return res
}

func user(v any) event.Event {
	return event.UserEvent{Payload: v}
}

var initEvent = event.NewEvents{Cause: event.Init}

func assertEvents(t *testing.T, want, got []event.Event) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}
