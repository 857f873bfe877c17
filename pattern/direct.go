package pattern

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
)

// Direct fires one shot straight at the avatar.
type Direct struct{}

func (Direct) Aim(ctx Context, _ note.Event) []cp.Vector {
	return []cp.Vector{common.Direction(ctx.Origin, ctx.Target, common.Down)}
}

// Shotgun aims like Direct, but notes arriving within Window seconds of the
// previous one form a cluster and fan out around the aim line: the k-th note
// of a cluster is rotated by 0, +Step, -Step, +2*Step, -2*Step and so on.
type Shotgun struct {
	Window float64
	Step   float64

	lastTime float64
	index    int
	started  bool
}

func NewShotgun(window, step float64) *Shotgun {
	return &Shotgun{Window: window, Step: step}
}

func (s *Shotgun) Aim(ctx Context, ev note.Event) []cp.Vector {
	if s == nil {
		return Direct{}.Aim(ctx, ev)
	}
	if s.started && ev.Time-s.lastTime <= s.Window {
		s.index++
	} else {
		s.index = 0
	}
	s.started = true
	s.lastTime = ev.Time

	dir := common.Direction(ctx.Origin, ctx.Target, common.Down)
	return []cp.Vector{common.Rotate(dir, SpreadOffset(s.index, s.Step))}
}

// Reset forgets the current cluster.
func (s *Shotgun) Reset() {
	if s == nil {
		return
	}
	s.index = 0
	s.lastTime = 0
	s.started = false
}

// SpreadOffset is the angular offset of the k-th member of a cluster.
func SpreadOffset(k int, step float64) float64 {
	if k <= 0 {
		return 0
	}
	n := float64((k + 1) / 2)
	if k%2 == 0 {
		n = -n
	}
	return n * step
}

// PitchArc ignores the avatar and maps pitch onto a fixed fan of angles:
// the lowest pitch fires at Start, the highest at End. Angles are radians
// with 0 pointing right and positive angles turning towards +y (down).
type PitchArc struct {
	Start float64
	End   float64
}

func (a PitchArc) Aim(_ Context, ev note.Event) []cp.Vector {
	angle := common.Lerp(a.Start, a.End, note.PitchRatio(ev.Pitch))
	return []cp.Vector{cp.ForAngle(angle)}
}

// AngleTo returns the angle of the line from origin to target.
func AngleTo(origin, target cp.Vector) float64 {
	d := common.Direction(origin, target, common.Down)
	return math.Atan2(d.Y, d.X)
}
