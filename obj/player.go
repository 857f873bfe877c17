package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
)

const defaultSlowFactor = 0.5

type PlayerConfig struct {
	Width      float64
	Height     float64
	Speed      float64
	SlowFactor float64
	Spawn      cp.Vector // top-left corner
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Width:      20,
		Height:     20,
		Speed:      320,
		SlowFactor: defaultSlowFactor,
		Spawn:      cp.Vector{X: 630, Y: 500},
	}
}

// Player is the avatar the user steers around the arena.
type Player struct {
	common.Rect

	BaseSpeed  float64
	SlowFactor float64
	// CurrentSpeed is the speed used on the last update.
	CurrentSpeed float64
}

func NewPlayer(cfg PlayerConfig) *Player {
	slow := cfg.SlowFactor
	if slow <= 0 || slow > 1 {
		slow = defaultSlowFactor
	}
	return &Player{
		Rect:         common.NewRect(cfg.Spawn.X, cfg.Spawn.Y, cfg.Width, cfg.Height),
		BaseSpeed:    cfg.Speed,
		SlowFactor:   slow,
		CurrentSpeed: cfg.Speed,
	}
}

// Update moves the player along the intent direction and keeps it inside
// the arena.
func (p *Player) Update(dt float64, in Intent, arena common.Arena) {
	if p == nil {
		return
	}
	if dt < 0 || !common.Finite(dt) {
		dt = 0
	}

	p.CurrentSpeed = p.BaseSpeed
	if in.Slow {
		p.CurrentSpeed *= p.SlowFactor
	}

	dir := in.Direction()
	p.Rect = arena.Clamp(p.Translate(dir.Mult(p.CurrentSpeed * dt)))
}
