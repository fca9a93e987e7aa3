// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements device independent and device dependent
sizes and the conversion between them.

Device independent pixel, or dp, is the unit for sizes independent of
the underlying display device. A LogicalSize is measured in dp.

Pixels, or px, is the unit for display dependent pixels. Their
size vary between platforms and displays. A PhysicalSize is measured
in px.

The scale factor is the number of px per dp of a display. On the web
it is the window's devicePixelRatio; terminals use a scale factor of 1
and treat one cell as one pixel.

*/
package unit

import (
	"fmt"
	"math"
)

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width, Height uint32
}

// LogicalSize is a size in device independent pixels.
type LogicalSize struct {
	Width, Height float64
}

// ValidScaleFactor reports whether s can be used for conversions: it
// must be a positive, normal floating point number.
func ValidScaleFactor(s float64) bool {
	return s >= 0x1p-1022 && !math.IsInf(s, 0)
}

// ToPhysical converts s to device pixels, rounding to the nearest
// pixel. Negative dimensions are clamped to zero.
func (s LogicalSize) ToPhysical(scale float64) PhysicalSize {
	return PhysicalSize{
		Width:  toPx(s.Width * scale),
		Height: toPx(s.Height * scale),
	}
}

// ToLogical converts s to device independent pixels.
func (s PhysicalSize) ToLogical(scale float64) LogicalSize {
	return LogicalSize{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

// Empty reports whether s has no area.
func (s PhysicalSize) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

func (s PhysicalSize) String() string {
	return fmt.Sprintf("%dx%dpx", s.Width, s.Height)
}

func (s LogicalSize) String() string {
	return fmt.Sprintf("%gx%gdp", s.Width, s.Height)
}

func toPx(v float64) uint32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
