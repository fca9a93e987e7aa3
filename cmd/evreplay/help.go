// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The evreplay command replays a trace of window notifications through an
event loop and prints the events the loop dispatches.

Usage:

	evreplay [flags] [trace.json]

The trace is read from the named file, or from standard input if no file is
given. It is a JSON object:

	{
		"controlFlow": "wait",
		"scale": 2,
		"screen": {"width": 1280, "height": 720},
		"windows": [{"width": 800, "height": 600}],
		"steps": [
			{"op": "key", "state": "down", "name": "A", "scancode": 30, "mods": ["shift"]},
			{"op": "fullscreen", "on": true},
			{"op": "frame"}
		]
	}

The environment is simulated: time only passes on "advance" steps and the
display only refreshes on "frame" steps. Every step names the window it
applies to with "window", an index into "windows" defaulting to 0.

Steps:

	focus      {"focused": bool}
	key        {"state": "down"|"up", "name", "scancode", "mods"}
	char       {"char": string}
	enter      {"pointer"}
	leave      {"pointer"}
	move       {"pointer", "x", "y", "mods"}
	button     {"pointer", "state": "down"|"up", "button", "mods"}
	wheel      {"pointer", "unit": "lines"|"px", "x", "y", "mods"}
	resize     {"scale", "width", "height"}
	fullscreen {"on": bool}
	redraw     request a redraw
	frame      refresh the display
	advance    {"ms": number}
	user       {"payload": any}
	poll, wait, exit
	           switch the control flow of the listener
	waitUntil  {"ms": number} wait until ms after the current time
	unload     tear the event loop down

Each dispatched event is printed as a JSON object on its own line.

The -v flag logs the event loop's activity to standard error.
`
