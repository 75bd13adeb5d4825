package model

import (
	"fmt"
	"math"
)

// Point is a pixel coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// BoundingBox is an absolute pixel rectangle given by its corners.
// A normalized box always has X1 <= X2 and Y1 <= Y2.
type BoundingBox struct {
	X1 int `yaml:"x1" json:"x1"`
	Y1 int `yaml:"y1" json:"y1"`
	X2 int `yaml:"x2" json:"x2"`
	Y2 int `yaml:"y2" json:"y2"`
}

// BoxFromCorners builds a box from two corners, swapping them if inverted.
func BoxFromCorners(x1, y1, x2, y2 int) BoundingBox {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// BoxFromRect builds a box from an origin and size. Negative sizes clamp to zero.
// Values are truncated toward zero, matching how the drivers report integer pixels.
func BoxFromRect(x, y, w, h float64) BoundingBox {
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	if h < 0 || math.IsNaN(h) {
		h = 0
	}
	x1, y1 := int(x), int(y)
	return BoundingBox{X1: x1, Y1: y1, X2: int(x + w), Y2: int(y + h)}
}

// Width returns X2-X1.
func (b BoundingBox) Width() int { return b.X2 - b.X1 }

// Height returns Y2-Y1.
func (b BoundingBox) Height() int { return b.Y2 - b.Y1 }

// Empty reports whether the box has zero width or height.
func (b BoundingBox) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Center returns the tap point of the box using floor division.
func (b BoundingBox) Center() Point {
	return Point{X: floorDiv(b.X1+b.X2, 2), Y: floorDiv(b.Y1+b.Y2, 2)}
}

// Scale multiplies every coordinate by f, truncating to integers.
func (b BoundingBox) Scale(f float64) BoundingBox {
	return BoundingBox{
		X1: int(float64(b.X1) * f),
		Y1: int(float64(b.Y1) * f),
		X2: int(float64(b.X2) * f),
		Y2: int(float64(b.Y2) * f),
	}
}

// Translate shifts the box by (dx, dy).
func (b BoundingBox) Translate(dx, dy int) BoundingBox {
	return BoundingBox{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// Intersects reports whether two boxes overlap with a non-empty area.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.X1 < o.X2 && b.X2 > o.X1 && b.Y1 < o.Y2 && b.Y2 > o.Y1
}

// String formats the box as "(x1, y1, x2, y2)".
func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.X1, b.Y1, b.X2, b.Y2)
}

// Frame is an origin+size rectangle in floating point, as reported by
// WebDriverAgent and the DOM.
type Frame struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Offset converts a parent-relative frame into an absolute one by adding the
// parent's absolute origin. Width and height are kept.
func (f Frame) Offset(parent Frame) Frame {
	return Frame{X: parent.X + f.X, Y: parent.Y + f.Y, W: f.W, H: f.H}
}

// Box converts the frame to an integer bounding box.
func (f Frame) Box() BoundingBox {
	return BoxFromRect(f.X, f.Y, f.W, f.H)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
