// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the types of events delivered by an
// event loop.
//
// Every event is a value. The concrete types form a closed set:
// WindowEvent, DeviceEvent, UserEvent, RedrawRequested, NewEvents and
// LoopDestroyed. Window and device scoped events carry a kind that
// further narrows what happened; use a type switch on the Event field.
package event

import (
	"fmt"
	"time"

	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// WindowID identifies a window or canvas for the lifetime of the
// process.
type WindowID uint64

// DeviceID identifies an input device. The zero value is
// UnknownDevice.
type DeviceID struct {
	id    pointer.ID
	known bool
}

// UnknownDevice is the device of events whose originating device
// cannot be determined, such as keyboard events. It is never equal
// to a device returned by PointerDevice.
var UnknownDevice DeviceID

// PointerDevice returns the device of the pointer with the given
// platform id.
func PointerDevice(id pointer.ID) DeviceID {
	return DeviceID{id: id, known: true}
}

// Known reports whether d identifies a specific device.
func (d DeviceID) Known() bool {
	return d.known
}

// Pointer returns the pointer id of d, if any.
func (d DeviceID) Pointer() (pointer.ID, bool) {
	return d.id, d.known
}

// Equal reports whether d and d2 denote the same device.
func (d DeviceID) Equal(d2 DeviceID) bool {
	return d == d2
}

func (d DeviceID) String() string {
	if !d.known {
		return "unknown"
	}
	return fmt.Sprintf("pointer(%d)", d.id)
}

// WindowEvent is an event scoped to a single window.
type WindowEvent struct {
	Window WindowID
	Event  WindowEventKind
}

// WindowEventKind is implemented by the kinds of window events.
type WindowEventKind interface {
	implementsWindowEvent()
}

// Focused is sent when a window gains or loses keyboard focus.
type Focused struct {
	Focused bool
}

// KeyboardInput is sent when a key is pressed or released.
type KeyboardInput struct {
	Device DeviceID
	Input  key.Input
	// Synthetic is set for events generated by the platform to
	// reconcile key state, for example on focus changes.
	Synthetic bool
}

// ReceivedCharacter is sent for text input.
type ReceivedCharacter struct {
	Char rune
}

// CursorEntered is sent when a pointer enters the window.
type CursorEntered struct {
	Device DeviceID
}

// CursorLeft is sent when a pointer leaves the window.
type CursorLeft struct {
	Device DeviceID
}

// CursorMoved is sent when a pointer moves inside the window.
type CursorMoved struct {
	Device DeviceID
	// Position is relative to the top left corner of the window,
	// in pixels.
	Position  f32.Point
	Modifiers key.Modifiers
}

// MouseInput is sent when a mouse button is pressed or released.
type MouseInput struct {
	Device    DeviceID
	State     pointer.State
	Button    pointer.Buttons
	Modifiers key.Modifiers
}

// MouseWheel is sent when a wheel or touchpad scrolls.
type MouseWheel struct {
	Device    DeviceID
	Delta     pointer.ScrollDelta
	Phase     pointer.Phase
	Modifiers key.Modifiers
}

// Resized is sent when the size of the window changes.
type Resized struct {
	Size unit.PhysicalSize
}

// ScaleFactorChanged is sent when the scale factor of the window
// or its environment changes.
type ScaleFactorChanged struct {
	ScaleFactor  float64
	NewInnerSize unit.PhysicalSize
}

// DeviceEvent is an event scoped to an input device rather than a
// window.
type DeviceEvent struct {
	Device DeviceID
	Event  DeviceEventKind
}

// DeviceEventKind is implemented by the kinds of device events.
type DeviceEventKind interface {
	implementsDeviceEvent()
}

// ModifiersChanged is sent whenever the set of held modifiers may
// have changed.
type ModifiersChanged struct {
	Modifiers key.Modifiers
}

// UserEvent carries an application defined payload injected
// through a proxy.
type UserEvent struct {
	Payload any
}

// RedrawRequested is sent once per display refresh to each window
// that requested a redraw since the previous refresh.
type RedrawRequested struct {
	Window WindowID
}

// Cause is the reason a new batch of events starts.
type Cause uint8

const (
	// Init starts the first batch, right after the listener is
	// installed.
	Init Cause = iota
	// Poll starts a batch in polling mode, once per display refresh.
	Poll
	// ResumeTimeReached starts a batch when a WaitUntil deadline
	// expires.
	ResumeTimeReached
)

// NewEvents marks the start of a batch of events.
type NewEvents struct {
	Cause Cause
	// Start is when the wait started and Requested is the deadline
	// that expired. Both are set for ResumeTimeReached only.
	Start, Requested time.Time
}

// LoopDestroyed is the last event delivered by an event loop. It
// is sent when the hosting environment tears the loop down.
type LoopDestroyed struct{}

func (c Cause) String() string {
	switch c {
	case Init:
		return "Init"
	case Poll:
		return "Poll"
	case ResumeTimeReached:
		return "ResumeTimeReached"
	default:
		return fmt.Sprintf("Cause(%d)", uint8(c))
	}
}

func (WindowEvent) ImplementsEvent()     {}
func (DeviceEvent) ImplementsEvent()     {}
func (UserEvent) ImplementsEvent()       {}
func (RedrawRequested) ImplementsEvent() {}
func (NewEvents) ImplementsEvent()       {}
func (LoopDestroyed) ImplementsEvent()   {}

func (Focused) implementsWindowEvent()            {}
func (KeyboardInput) implementsWindowEvent()      {}
func (ReceivedCharacter) implementsWindowEvent()  {}
func (CursorEntered) implementsWindowEvent()      {}
func (CursorLeft) implementsWindowEvent()         {}
func (CursorMoved) implementsWindowEvent()        {}
func (MouseInput) implementsWindowEvent()         {}
func (MouseWheel) implementsWindowEvent()         {}
func (Resized) implementsWindowEvent()            {}
func (ScaleFactorChanged) implementsWindowEvent() {}

func (ModifiersChanged) implementsDeviceEvent() {}
