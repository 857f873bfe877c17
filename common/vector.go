package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Down is the fallback heading for degenerate directions. Emitters sit near
// the top of the arena, so down points into the play field.
var Down = cp.Vector{X: 0, Y: 1}

// Normalize returns v scaled to unit length. A degenerate v yields the
// normalized fallback instead, or Down when the fallback is degenerate too.
func Normalize(v, fallback cp.Vector) cp.Vector {
	if l := v.Length(); l > Epsilon && Finite(l) {
		return v.Mult(1 / l)
	}
	if l := fallback.Length(); l > Epsilon && Finite(l) {
		return fallback.Mult(1 / l)
	}
	return Down
}

// Direction returns the unit vector from "from" towards "to".
func Direction(from, to, fallback cp.Vector) cp.Vector {
	return Normalize(to.Sub(from), fallback)
}

// Perpendicular returns v turned a quarter turn.
func Perpendicular(v cp.Vector) cp.Vector {
	return v.Perp()
}

// Rotate turns v by radians. With the screen's y axis pointing down a
// positive angle turns clockwise.
func Rotate(v cp.Vector, radians float64) cp.Vector {
	return v.Rotate(cp.ForAngle(radians))
}

// AngleBetween returns the signed angle that turns a onto b.
func AngleBetween(a, b cp.Vector) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// RotateToward turns heading towards target by at most maxRadians and
// returns the resulting unit vector.
func RotateToward(heading, target cp.Vector, maxRadians float64) cp.Vector {
	h := Normalize(heading, Down)
	t := Normalize(target, h)
	if maxRadians <= 0 {
		return h
	}
	angle := AngleBetween(h, t)
	if math.Abs(angle) <= maxRadians {
		return t
	}
	if angle < 0 {
		maxRadians = -maxRadians
	}
	return Normalize(Rotate(h, maxRadians), h)
}
