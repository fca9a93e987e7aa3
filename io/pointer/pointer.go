// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements pointer identifiers, buttons and
// scroll deltas.
package pointer

import (
	"fmt"
	"strings"

	"gioui.org/evloop/f32"
)

// ID is the platform identifier of a pointer. On the web it is
// the pointerId of a PointerEvent.
type ID int32

// Buttons is a set of mouse buttons
type Buttons uint8

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
	// ButtonBack is the "browser back" button.
	ButtonBack
	// ButtonForward is the "browser forward" button.
	ButtonForward
)

// State is the state of a button during an event.
type State uint8

const (
	// Pressed is the state of a pressed button.
	Pressed State = iota
	// Released is the state of a released button.
	Released
)

// Phase describes the progress of a scroll or touch gesture.
type Phase uint8

const (
	Started Phase = iota
	Moved
	Ended
	Cancelled
)

// ScrollUnit is the unit of a ScrollDelta.
type ScrollUnit uint8

const (
	// ScrollLines is the unit for wheels that scroll by rows and
	// columns of text.
	ScrollLines ScrollUnit = iota
	// ScrollPixels is the unit for precise scrolling devices such as
	// touchpads.
	ScrollPixels
)

// ScrollDelta is the amount scrolled by a wheel event. Positive
// values scroll content right and down.
type ScrollDelta struct {
	Unit ScrollUnit
	f32.Point
}

// Lines returns a ScrollDelta of x columns and y rows.
func Lines(x, y float32) ScrollDelta {
	return ScrollDelta{Unit: ScrollLines, Point: f32.Pt(x, y)}
}

// Pixels returns a ScrollDelta of x and y pixels.
func Pixels(x, y float32) ScrollDelta {
	return ScrollDelta{Unit: ScrollPixels, Point: f32.Pt(x, y)}
}

func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	if b.Contain(ButtonBack) {
		strs = append(strs, "ButtonBack")
	}
	if b.Contain(ButtonForward) {
		strs = append(strs, "ButtonForward")
	}
	return strings.Join(strs, "|")
}

func (s State) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

func (p Phase) String() string {
	switch p {
	case Started:
		return "Started"
	case Moved:
		return "Moved"
	case Ended:
		return "Ended"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (d ScrollDelta) String() string {
	u := "lines"
	if d.Unit == ScrollPixels {
		u = "px"
	}
	return d.Point.String() + u
}
