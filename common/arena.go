package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Arena is the fixed logical play field shared by all motion and collision
// code. It is independent of the window size.
type Arena struct {
	Width  float64
	Height float64
}

func (a Arena) Valid() bool {
	return a.Width > 0 && a.Height > 0 && Finite(a.Width) && Finite(a.Height)
}

func (a Arena) Center() cp.Vector {
	return cp.Vector{X: a.Width / 2, Y: a.Height / 2}
}

// Contains reports whether r lies fully inside the arena.
func (a Arena) Contains(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= a.Width && r.Bottom() <= a.Height
}

// Clamp moves r the minimum distance needed to lie inside the arena.
func (a Arena) Clamp(r Rect) Rect {
	r.X = math.Max(0, math.Min(r.X, a.Width-r.Width))
	r.Y = math.Max(0, math.Min(r.Y, a.Height-r.Height))
	return r
}

// Bounce clamps r to the arena on every axis it crossed and reflects the
// matching velocity component so it points back inside. It returns the
// number of axes that were reflected.
func (a Arena) Bounce(r *Rect, vel *cp.Vector) int {
	if r == nil || vel == nil {
		return 0
	}
	bounced := 0
	if r.X < 0 {
		r.X = 0
		vel.X = math.Abs(vel.X)
		bounced++
	} else if r.Right() > a.Width {
		r.X = math.Max(0, a.Width-r.Width)
		vel.X = -math.Abs(vel.X)
		bounced++
	}
	if r.Y < 0 {
		r.Y = 0
		vel.Y = math.Abs(vel.Y)
		bounced++
	} else if r.Bottom() > a.Height {
		r.Y = math.Max(0, a.Height-r.Height)
		vel.Y = -math.Abs(vel.Y)
		bounced++
	}
	return bounced
}
