// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	if got, want := p.Add(Pt(2, -3)), Pt(3, -1); got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}
	if got, want := p.Sub(Pt(2, -3)), Pt(-1, 5); got != want {
		t.Errorf("Sub: got %v, want %v", got, want)
	}
	if got, want := p.Mul(1.5), Pt(1.5, 3); got != want {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
	if got, want := Pt(1.4, 2.6).Round(), Pt(1, 3); got != want {
		t.Errorf("Round: got %v, want %v", got, want)
	}
}

func TestPointString(t *testing.T) {
	if got, want := Pt(1.5, -2).String(), "(1.5,-2)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
