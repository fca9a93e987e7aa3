// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app serializes the notifications of windows and input devices into
one ordered stream of events delivered to a single listener.

# Running

A Target is created for the environment the program runs in, described by
a Platform. Surfaces such as browser canvases or terminal screens implement
Canvas and are registered with the Target under an id from GenerateID. The
program then installs its listener with Run:

	t := app.NewTarget(platform)
	id := t.GenerateID()
	if err := t.Register(canvas, id); err != nil {
		...
	}
	err := t.Run(func(e event.Event, cf *app.ControlFlow) {
		switch e := e.(type) {
		case event.RedrawRequested:
			...
		case event.WindowEvent:
			...
		}
		cf.SetWait()
	})

Run returns as soon as the listener is installed; events are delivered as
the environment raises them.

# Ordering

The listener is never invoked recursively. Events raised while the listener
runs, including those raised by the listener itself, are queued and
delivered in the order they were sent once the listener returns. Events
raised before Run are delivered, in order, right after Run installs the
listener.

# Control flow

The listener receives a pointer to the current ControlFlow. The value it
holds when the listener returns decides what happens next: Poll delivers a
NewEvents event on every display refresh, Wait delivers events only when
they happen, WaitUntil additionally wakes the loop at a deadline, and Exit
stops delivery for good.

# Proxies

A Proxy injects application defined events from other goroutines, such as
network handlers or timers. Proxy events obey the same ordering rules as
every other event.
*/
package app
