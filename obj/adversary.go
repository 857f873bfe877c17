package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
)

type AdversaryConfig struct {
	Width      float64
	Height     float64
	Speed      float64
	Direction  cp.Vector
	Spawn      cp.Vector // top-left corner
	Stationary bool
}

func DefaultAdversaryConfig() AdversaryConfig {
	return AdversaryConfig{
		Width:     64,
		Height:    64,
		Speed:     140,
		Direction: cp.Vector{X: 1, Y: 0.35},
		Spawn:     cp.Vector{X: 608, Y: 40},
	}
}

// Adversary is the boss. Its center is the spawn origin for every note.
type Adversary struct {
	common.Rect

	Velocity   cp.Vector
	Speed      float64
	Stationary bool
}

func NewAdversary(cfg AdversaryConfig) *Adversary {
	a := &Adversary{
		Rect:       common.NewRect(cfg.Spawn.X, cfg.Spawn.Y, cfg.Width, cfg.Height),
		Speed:      cfg.Speed,
		Stationary: cfg.Stationary,
	}
	if !a.Stationary {
		a.Velocity = common.Normalize(cfg.Direction, cp.Vector{X: 1}).Mult(cfg.Speed)
	}
	return a
}

// Update integrates velocity and bounces off the arena walls. A stationary
// adversary never moves.
func (a *Adversary) Update(dt float64, arena common.Arena) int {
	if a == nil || a.Stationary {
		return 0
	}
	if dt < 0 || !common.Finite(dt) {
		dt = 0
	}
	a.Rect = a.Translate(a.Velocity.Mult(dt))
	return arena.Bounce(&a.Rect, &a.Velocity)
}

// Deflect pushes a moving adversary radially away from point.
func (a *Adversary) Deflect(from cp.Vector) bool {
	if a == nil || a.Stationary {
		return false
	}
	dir := common.Direction(from, a.Center(), common.Normalize(a.Velocity, common.Down))
	a.Velocity = dir.Mult(a.Speed)
	return true
}
