// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 implementation of package image's
Point.

The coordinate space has the origin in the top left
corner of a surface with the axes extending right and down.
Values are in physical pixels unless stated otherwise.
*/
package f32

import (
	"math"
	"strconv"
)

// A Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add return the point p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Round returns p with both coordinates rounded to the
// nearest integer.
func (p Point) Round() Point {
	return Point{
		X: float32(math.Round(float64(p.X))),
		Y: float32(math.Round(float64(p.Y))),
	}
}

// String return a textual representation of p.
func (p Point) String() string {
	return "(" + strconv.FormatFloat(float64(p.X), 'f', -1, 32) +
		"," + strconv.FormatFloat(float64(p.Y), 'f', -1, 32) + ")"
}
