// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"time"
)

// Mode is the policy deciding when the next events are delivered.
type Mode uint8

const (
	// Poll delivers a NewEvents event on every display refresh, even
	// when nothing happened.
	Poll Mode = iota
	// Wait delivers events only as they happen.
	Wait
	// WaitUntil is like Wait, but also wakes the loop once the
	// deadline has passed.
	WaitUntil
	// Exit stops all delivery. It cannot be undone.
	Exit
)

// ControlFlow is the policy in effect after the listener returns.
type ControlFlow struct {
	Mode Mode
	// Deadline is the wake up time for WaitUntil.
	Deadline time.Time
}

// SetPoll switches to Poll.
func (cf *ControlFlow) SetPoll() {
	*cf = ControlFlow{Mode: Poll}
}

// SetWait switches to Wait.
func (cf *ControlFlow) SetWait() {
	*cf = ControlFlow{Mode: Wait}
}

// SetWaitUntil switches to WaitUntil with deadline t.
func (cf *ControlFlow) SetWaitUntil(t time.Time) {
	*cf = ControlFlow{Mode: WaitUntil, Deadline: t}
}

// SetExit switches to Exit.
func (cf *ControlFlow) SetExit() {
	*cf = ControlFlow{Mode: Exit}
}

func (m Mode) String() string {
	switch m {
	case Poll:
		return "Poll"
	case Wait:
		return "Wait"
	case WaitUntil:
		return "WaitUntil"
	case Exit:
		return "Exit"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func (cf ControlFlow) String() string {
	if cf.Mode == WaitUntil {
		return fmt.Sprintf("WaitUntil(%s)", cf.Deadline.Format(time.RFC3339Nano))
	}
	return cf.Mode.String()
}
