package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAround builds a box of the given size centered on c.
func RectAround(c cp.Vector, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Position() cp.Vector {
	return cp.Vector{X: r.X, Y: r.Y}
}

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Extent is the larger of the two dimensions.
func (r Rect) Extent() float64 {
	return math.Max(r.Width, r.Height)
}

// Translate returns r moved by d.
func (r Rect) Translate(d cp.Vector) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Intersects reports whether the boxes overlap. Boxes that only share an
// edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// ClosestPoint returns the point inside r nearest to p.
func (r Rect) ClosestPoint(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: Clamp(p.X, r.X, r.Right()),
		Y: Clamp(p.Y, r.Y, r.Bottom()),
	}
}

// CircleIntersectsRect is the closest-point circle/box test. A box whose
// nearest point lies exactly on the circle counts as a hit.
func CircleIntersectsRect(center cp.Vector, radius float64, r Rect) bool {
	if radius < 0 {
		return false
	}
	return r.ClosestPoint(center).DistanceSq(center) <= radius*radius
}
