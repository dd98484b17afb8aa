// Package geometry resolves gradient fill coordinates.
//
// Linear gradients are specified by a CSS angle and radial gradients by
// canvas-relative length expressions; both are turned into plain pixel
// coordinates for a canvas of a given size. All functions are pure.
package geometry

import (
	"math"
)

// Line is a gradient axis in canvas pixel space (origin top-left, y down).
type Line struct {
	X0, Y0 float64
	X1, Y1 float64
}

// LinearGradientLine returns the endpoints of the gradient axis for a
// width x height canvas so that a gradient painted between them matches
// CSS linear-gradient(<angle>deg, ...): 0 points up and angles grow clockwise.
//
// The angle is rounded to whole degrees and normalized into [0, 360).
// Coordinates are rounded to whole pixels.
func LinearGradientLine(angle float64, width, height int) Line {
	w, h := float64(width), float64(height)
	a := NormalizeAngle(angle)

	// Axis perpendicular to the horizontal edges.
	switch a {
	case 0:
		return Line{X0: round(w / 2), Y0: h, X1: round(w / 2), Y1: 0}
	case 180:
		return Line{X0: round(w / 2), Y0: 0, X1: round(w / 2), Y1: h}
	case 90:
		return Line{X0: 0, Y0: round(h / 2), X1: w, Y1: round(h / 2)}
	case 270:
		return Line{X0: w, Y0: round(h / 2), X1: 0, Y1: round(h / 2)}
	}

	// Axis on one of the diagonals.
	alpha := DiagonalAngle(width, height)
	switch a {
	case alpha:
		return Line{X0: 0, Y0: h, X1: w, Y1: 0}
	case 180 - alpha:
		return Line{X0: 0, Y0: 0, X1: w, Y1: h}
	case 180 + alpha:
		return Line{X0: w, Y0: 0, X1: 0, Y1: h}
	case 360 - alpha:
		return Line{X0: w, Y0: h, X1: 0, Y1: 0}
	}

	// Solve in a frame centred on the canvas with y pointing up.
	var x1, y1 float64
	if exitsHorizontalEdge(a, alpha) {
		rad := a * math.Pi / 180
		y := -h / 2
		if a < alpha || a > 360-alpha {
			y = h / 2
		}
		x := math.Tan(rad) * y
		l := -w/2 - x
		if a < alpha || (a > 180-alpha && a < 180) {
			l = w/2 - x
		}
		n := math.Pow(math.Sin(rad), 2) * l
		x1 = x + n
		y1 = y + n/math.Tan(rad)
	} else {
		rad := (90 - a) * math.Pi / 180
		x := -w / 2
		if (a > alpha && a < 90) || (a > 90 && a < 180-alpha) {
			x = w / 2
		}
		y := math.Tan(rad) * x
		l := -h/2 - y
		if (a > alpha && a < 90) || (a > 270 && a < 360-alpha) {
			l = h/2 - y
		}
		n := math.Pow(math.Sin(rad), 2) * l
		x1 = x + n/math.Tan(rad)
		y1 = y + n
	}
	x0, y0 := -x1, -y1

	return Line{
		X0: round(x0 + w/2),
		Y0: round(h/2 - y0),
		X1: round(x1 + w/2),
		Y1: round(h/2 - y1),
	}
}

// exitsHorizontalEdge reports whether the axis at angle a leaves the
// rectangle through its top or bottom edge rather than a side.
func exitsHorizontalEdge(a, alpha float64) bool {
	return a < alpha ||
		(a > 180-alpha && a < 180) ||
		(a > 180 && a < 180+alpha) ||
		a > 360-alpha
}

// NormalizeAngle rounds an angle to whole degrees and maps it into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(round(angle), 360)
	if a < 0 {
		a += 360
	}
	if a == 360 {
		a = 0
	}
	return a
}

// DiagonalAngle returns the CSS angle, in whole degrees, of the diagonal
// running from the bottom-left to the top-right corner.
func DiagonalAngle(width, height int) float64 {
	w, h := float64(width), float64(height)
	d := math.Hypot(w, h)
	if d == 0 {
		return 0
	}
	return round(math.Asin(w/d) * 180 / math.Pi)
}

// round rounds half up, matching raster fill expectations for negative
// coordinates as well (-2.5 becomes -2).
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
