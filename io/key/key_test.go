// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"
)

func TestModifiersString(t *testing.T) {
	tests := []struct {
		m    Modifiers
		want string
	}{
		{0, ""},
		{ModShift, "Shift"},
		{ModCtrl | ModShift, "Ctrl-Shift"},
		{ModSuper | ModAlt | ModCtrl | ModShift, "Ctrl-Shift-Alt-Super"},
	}
	for _, tst := range tests {
		if got := tst.m.String(); got != tst.want {
			t.Errorf("%#x.String() = %q, want %q", uint32(tst.m), got, tst.want)
		}
	}
}

func TestModifiersContain(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Contain(ModShift) || !m.Contain(ModCtrl|ModShift) {
		t.Errorf("%v should contain Ctrl and Shift", m)
	}
	if m.Contain(ModAlt) || m.Contain(ModShift|ModAlt) {
		t.Errorf("%v should not contain Alt", m)
	}
}

func TestInputString(t *testing.T) {
	in := Input{ScanCode: 30, State: Press, Name: "A", Modifiers: ModShift}
	if got, want := in.String(), "Press Shift-A (scancode 30)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	in = Input{State: Release}
	if got, want := in.String(), "Release ? (scancode 0)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := State(7).String(), "State(7)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
