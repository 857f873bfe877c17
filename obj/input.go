package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Intent is the per-tick input state the simulation consumes. The host is
// responsible for polling devices and filling it in.
type Intent struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	// Slow halves movement speed while held.
	Slow bool
	// Deploy requests a barrier deployment on this tick.
	Deploy bool
	Pause  bool
}

// Direction returns the unit movement direction, or the zero vector when no
// direction is held or opposing keys cancel out.
func (i Intent) Direction() cp.Vector {
	var dx, dy float64
	if i.Left {
		dx -= 1
	}
	if i.Right {
		dx += 1
	}
	if i.Up {
		dy -= 1
	}
	if i.Down {
		dy += 1
	}
	if dx == 0 && dy == 0 {
		return cp.Vector{}
	}
	mag := math.Hypot(dx, dy)
	return cp.Vector{X: dx / mag, Y: dy / mag}
}

func (i Intent) Moving() bool {
	d := i.Direction()
	return d.X != 0 || d.Y != 0
}
