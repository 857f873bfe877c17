package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
)

type BarrierState int

const (
	BarrierIdle BarrierState = iota
	BarrierDeploying
	BarrierHeld
	BarrierRetracting
)

func (s BarrierState) String() string {
	switch s {
	case BarrierIdle:
		return "idle"
	case BarrierDeploying:
		return "deploying"
	case BarrierHeld:
		return "held"
	case BarrierRetracting:
		return "retracting"
	default:
		return "unknown"
	}
}

type BarrierConfig struct {
	MaxUses int
	// DeployDuration is the time from deploy until retraction starts.
	DeployDuration   float64
	ExtendTime       float64
	RetractTime      float64
	ArmThreshold     float64
	RadiusMultiplier float64
}

func DefaultBarrierConfig() BarrierConfig {
	return BarrierConfig{
		MaxUses:          3,
		DeployDuration:   3,
		ExtendTime:       0.2,
		RetractTime:      0.2,
		ArmThreshold:     0.8,
		RadiusMultiplier: 1.5,
	}
}

// barrierPhase is implemented by each lifecycle state.
type barrierPhase interface {
	Enter(b *Barrier)
	Update(b *Barrier)
	State() BarrierState
}

var (
	phaseIdle       barrierPhase = idlePhase{}
	phaseDeploying  barrierPhase = deployingPhase{}
	phaseHeld       barrierPhase = heldPhase{}
	phaseRetracting barrierPhase = retractingPhase{}
)

type idlePhase struct{}

func (idlePhase) State() BarrierState { return BarrierIdle }
func (idlePhase) Enter(b *Barrier) {
	b.timer = 0
	b.extension = 0
}
func (idlePhase) Update(b *Barrier) {}

type deployingPhase struct{}

func (deployingPhase) State() BarrierState { return BarrierDeploying }
func (deployingPhase) Enter(b *Barrier) {
	b.timer = 0
	b.extension = 0
}
func (deployingPhase) Update(b *Barrier) {
	b.extension = progress(b.timer, b.cfg.ExtendTime)
	if b.extension >= 1 {
		b.setPhase(phaseHeld)
	}
}

type heldPhase struct{}

func (heldPhase) State() BarrierState { return BarrierHeld }
func (heldPhase) Enter(b *Barrier) {
	b.extension = 1
}
func (heldPhase) Update(b *Barrier) {
	if b.timer >= b.cfg.DeployDuration {
		b.setPhase(phaseRetracting)
	}
}

type retractingPhase struct{}

func (retractingPhase) State() BarrierState { return BarrierRetracting }
func (retractingPhase) Enter(b *Barrier) {
	b.retractStart = math.Max(b.cfg.DeployDuration, b.cfg.ExtendTime)
}
func (retractingPhase) Update(b *Barrier) {
	b.extension = 1 - progress(b.timer-b.retractStart, b.cfg.RetractTime)
	if b.extension <= 0 {
		b.setPhase(phaseIdle)
	}
}

func progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return common.Clamp(elapsed/total, 0, 1)
}

// Barrier is the avatar's limited-use shield. It is centered on the avatar
// and only collides once its extension has reached the arm threshold.
type Barrier struct {
	cfg          BarrierConfig
	phase        barrierPhase
	uses         int
	timer        float64
	retractStart float64
	extension    float64
}

func NewBarrier(cfg BarrierConfig) *Barrier {
	b := &Barrier{cfg: cfg, uses: max(cfg.MaxUses, 0)}
	b.setPhase(phaseIdle)
	return b
}

func (b *Barrier) setPhase(p barrierPhase) {
	b.phase = p
	b.phase.Enter(b)
}

// Deploy starts a deployment, consuming one use. It reports false without
// changing anything when the barrier is busy or out of uses.
func (b *Barrier) Deploy() bool {
	if b == nil || b.phase != phaseIdle || b.uses <= 0 {
		return false
	}
	b.uses--
	b.setPhase(phaseDeploying)
	return true
}

// Update advances the lifecycle. Phase changes cascade within one call so a
// large dt can carry the barrier through several phases.
func (b *Barrier) Update(dt float64) {
	if b == nil || b.phase == phaseIdle {
		return
	}
	if dt < 0 || !common.Finite(dt) {
		dt = 0
	}
	b.timer += dt
	for i := 0; i < 4; i++ {
		before := b.phase
		b.phase.Update(b)
		if b.phase == before || b.phase == phaseIdle {
			return
		}
	}
}

func (b *Barrier) State() BarrierState {
	if b == nil || b.phase == nil {
		return BarrierIdle
	}
	return b.phase.State()
}

// Armed reports whether the barrier currently takes part in collisions.
func (b *Barrier) Armed() bool {
	if b == nil || b.phase == phaseIdle {
		return false
	}
	return b.extension >= b.cfg.ArmThreshold
}

func (b *Barrier) UsesRemaining() int {
	if b == nil {
		return 0
	}
	return b.uses
}

// Extension is the deploy animation progress in [0,1].
func (b *Barrier) Extension() float64 {
	if b == nil {
		return 0
	}
	return b.extension
}

func (b *Barrier) Reset() {
	if b == nil {
		return
	}
	b.uses = max(b.cfg.MaxUses, 0)
	b.setPhase(phaseIdle)
}

// Radius is the full-extension radius of the barrier around avatar.
func (b *Barrier) Radius(avatar common.Rect) float64 {
	if b == nil {
		return 0
	}
	return math.Max(avatar.Width, avatar.Height) * b.cfg.RadiusMultiplier
}

// CheckCollision reports whether box touches the barrier circle around
// avatar. A box exactly on the radius counts as touching. Callers deciding
// whether to deflect should also check Armed.
func (b *Barrier) CheckCollision(avatar, box common.Rect) bool {
	if b == nil {
		return false
	}
	return common.CircleIntersectsRect(avatar.Center(), b.Radius(avatar), box)
}

// Deflects combines Armed and CheckCollision.
func (b *Barrier) Deflects(avatar, box common.Rect) bool {
	return b.Armed() && b.CheckCollision(avatar, box)
}

// Origin is the point deflected entities are pushed away from.
func (b *Barrier) Origin(avatar common.Rect) cp.Vector {
	return avatar.Center()
}
