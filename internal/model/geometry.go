package model

import "fmt"

// Point is a position on the virtual screen, in physical pixels.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Rect is an axis-aligned rectangle on the virtual screen, in physical pixels.
// X and Y may be negative when a monitor sits left of or above the primary one.
type Rect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rectangle, rounded toward the origin.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether two rectangles overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	ax1, ay1, ax2, ay2 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	bx1, by1, bx2, by2 := o.X, o.Y, o.X+o.Width, o.Y+o.Height
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}

// Clip returns the part of r that lies within bounds. The result is the zero
// Rect when they do not overlap.
func (r Rect) Clip(bounds Rect) Rect {
	if r.Empty() || bounds.Empty() || !r.Intersects(bounds) {
		return Rect{}
	}
	x1 := max(r.X, bounds.X)
	y1 := max(r.Y, bounds.Y)
	x2 := min(r.X+r.Width, bounds.X+bounds.Width)
	y2 := min(r.Y+r.Height, bounds.Y+bounds.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
