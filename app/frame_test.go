// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler records frame requests.
type fakeScheduler struct {
	frames    []func()
	cancelled int
}

func (s *fakeScheduler) RequestFrame(f func()) func() {
	s.frames = append(s.frames, f)
	return func() { s.cancelled++ }
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() {
	panic("not used")
}

func (s *fakeScheduler) Now() time.Time {
	return time.Time{}
}

func TestAnimationFrameArmOnce(t *testing.T) {
	s := new(fakeScheduler)
	a := animationFrame{sched: s}
	calls := 0
	cb := func() { calls++ }
	a.arm(cb)
	a.arm(cb)
	require.Len(t, s.frames, 1)
	assert.True(t, a.isArmed())

	s.frames[0]()
	assert.Equal(t, 1, calls)
	assert.False(t, a.isArmed())

	// A stale callback fires nothing.
	s.frames[0]()
	assert.Equal(t, 1, calls)
}

func TestAnimationFrameRearmFromCallback(t *testing.T) {
	s := new(fakeScheduler)
	a := animationFrame{sched: s}
	var cb func()
	calls := 0
	cb = func() {
		calls++
		a.arm(cb)
	}
	a.arm(cb)
	for i := 0; i < 3; i++ {
		s.frames[len(s.frames)-1]()
	}
	assert.Equal(t, 3, calls)
	assert.Len(t, s.frames, 4)
	assert.True(t, a.isArmed())
}

func TestAnimationFrameCancel(t *testing.T) {
	s := new(fakeScheduler)
	a := animationFrame{sched: s}
	calls := 0
	a.arm(func() { calls++ })
	a.cancel()
	assert.Equal(t, 1, s.cancelled)
	assert.False(t, a.isArmed())
	s.frames[0]()
	assert.Zero(t, calls)

	// Cancelling a disarmed frame is a no-op.
	a.cancel()
	assert.Equal(t, 1, s.cancelled)
}

func TestArmFrameAfterExit(t *testing.T) {
	s := new(fakeScheduler)
	r := NewRunner(s, WithControlFlow(ControlFlow{Mode: Exit}))
	r.armFrame()
	require.Len(t, s.frames, 1)
	assert.Equal(t, 1, s.cancelled)
	assert.False(t, r.frame.isArmed())
}
