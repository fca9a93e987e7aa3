// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"testing"

	"gioui.org/evloop/io/key"
)

func TestQuit(t *testing.T) {
	tests := []struct {
		in   key.Input
		want bool
	}{
		{key.Input{State: key.Press, Name: "Q"}, true},
		{key.Input{State: key.Release, Name: "Q"}, false},
		{key.Input{State: key.Press, Name: "Q", Modifiers: key.ModShift}, false},
		{key.Input{State: key.Press, Name: "C", Modifiers: key.ModCtrl}, true},
		{key.Input{State: key.Press, Name: "C"}, false},
	}
	for _, tt := range tests {
		if got := quit(tt.in); got != tt.want {
			t.Errorf("quit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
